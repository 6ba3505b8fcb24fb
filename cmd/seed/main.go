package main

import (
	"log"

	"aura/internal/app"
	"aura/internal/config"
	"aura/internal/database"
	"aura/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := app.NewLogger(cfg, "seed")

	db, err := database.Connect(cfg.Database.URL, database.Options{MaxOpenConns: 2, MaxIdleConns: 1}, logg)
	if err != nil {
		logg.Fatal("database connect failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logg.Fatal("migration failed", "error", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		logg.Info("seeding geography")
		address, err := seedGeography(tx)
		if err != nil {
			return err
		}

		logg.Info("seeding working days")
		days := map[string]*domain.WorkingDay{}
		for _, name := range weekdays {
			d := &domain.WorkingDay{Day: name}
			if err := tx.Where(domain.WorkingDay{Day: name}).FirstOrCreate(d).Error; err != nil {
				return err
			}
			days[name] = d
		}

		logg.Info("seeding users")
		if _, err := seedUser(tx, &domain.User{
			FullName: "Administrator", Username: "admin", Email: "admin@aura.uz",
			IsStaff: true, IsActive: true,
		}, "admin123"); err != nil {
			return err
		}
		master, err := seedUser(tx, &domain.User{
			FullName: "Malika Karimova", Username: "malika", Email: "malika@aura.uz",
			Gender: domain.GenderFemale, IsMaster: true, IsActive: true, AddressID: &address.ID,
		}, "master123")
		if err != nil {
			return err
		}
		if _, err := seedUser(tx, &domain.User{
			FullName: "Aziz Rahimov", Username: "aziz", Email: "aziz@aura.uz",
			Gender: domain.GenderMale, IsActive: true, AddressID: &address.ID,
		}, "client123"); err != nil {
			return err
		}

		logg.Info("seeding catalog")
		categories := []*domain.Category{{Name: "Hair"}, {Name: "Nails"}, {Name: "Makeup"}}
		for _, c := range categories {
			if err := tx.Where(domain.Category{Name: c.Name}).FirstOrCreate(c).Error; err != nil {
				return err
			}
		}
		services := []*domain.Service{
			{Name: "Haircut", Price: 80000, Duration: "01:00", CategoryID: categories[0].ID, UserID: master.ID},
			{Name: "Manicure", Price: 60000, Duration: "00:30", CategoryID: categories[1].ID, UserID: master.ID},
			{Name: "Evening makeup", Price: 150000, Duration: "01:30", CategoryID: categories[2].ID, UserID: master.ID},
		}
		for _, s := range services {
			if err := tx.Where(domain.Service{Name: s.Name, UserID: s.UserID}).FirstOrCreate(s).Error; err != nil {
				return err
			}
		}

		for _, name := range weekdays[:6] {
			wt := &domain.WorkingTime{DayID: days[name].ID, UserID: master.ID, StartTime: "10:00", EndTime: "18:00"}
			if err := tx.Where(domain.WorkingTime{DayID: wt.DayID, UserID: wt.UserID}).FirstOrCreate(wt).Error; err != nil {
				return err
			}
		}

		logg.Info("seeding content")
		if err := tx.Where(domain.Faq{Question: "How do I book a master?"}).FirstOrCreate(&domain.Faq{
			Question: "How do I book a master?",
			Answer:   "Pick a service, choose a free time and confirm. The master approves the booking.",
		}).Error; err != nil {
			return err
		}
		return tx.Where(domain.Shop{Name: "Argan hair oil"}).FirstOrCreate(&domain.Shop{
			Name: "Argan hair oil", Price: 120000, Availability: true, Brand: "Aura",
		}).Error
	})
	if err != nil {
		logg.Fatal("seed failed", "error", err)
	}

	logg.Info("seed completed")
	logg.Info("test accounts",
		"staff", "admin / admin123",
		"master", "malika / master123",
		"customer", "aziz / client123",
	)
}

func seedGeography(tx *gorm.DB) (*domain.Address, error) {
	region := &domain.Region{Name: "Tashkent"}
	if err := tx.Where(domain.Region{Name: region.Name}).FirstOrCreate(region).Error; err != nil {
		return nil, err
	}
	district := &domain.District{Name: "Yunusabad", RegionID: region.ID}
	if err := tx.Where(domain.District{Name: district.Name, RegionID: region.ID}).FirstOrCreate(district).Error; err != nil {
		return nil, err
	}
	mahalla := &domain.Mahalla{Name: "Bodomzor", DistrictID: district.ID}
	if err := tx.Where(domain.Mahalla{Name: mahalla.Name, DistrictID: district.ID}).FirstOrCreate(mahalla).Error; err != nil {
		return nil, err
	}
	address := &domain.Address{RegionID: region.ID, DistrictID: district.ID, MahallaID: mahalla.ID, House: "12"}
	if err := tx.Where(domain.Address{MahallaID: mahalla.ID, House: "12"}).FirstOrCreate(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// seedUser upserts by username so reruns reset the demo password.
func seedUser(tx *gorm.DB, u *domain.User, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "is_active", "is_master", "is_staff"}),
	}).Create(u).Error
	if err != nil {
		return nil, err
	}
	var stored domain.User
	if err := tx.Where("username = ?", u.Username).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
