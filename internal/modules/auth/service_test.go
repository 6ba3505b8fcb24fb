package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"aura/internal/database/dbtest"
	"aura/internal/domain"
	"aura/internal/pkg/codestore"
	"aura/internal/pkg/jwt"
	"aura/internal/pkg/mailer"
	"aura/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var codeInMail = regexp.MustCompile(`<strong>(\d{6})</strong>`)

type fixture struct {
	db     *gorm.DB
	svc    *Service
	codes  *codestore.MemoryStore
	outbox *mailer.Outbox
	jwt    *jwt.Service
	now    time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	f := &fixture{
		db:     db,
		outbox: &mailer.Outbox{},
		jwt:    jwt.New("test-secret", 15*time.Minute),
		now:    time.Now(),
	}
	f.codes = codestore.NewMemoryStore().WithClock(func() time.Time { return f.now })
	f.svc = NewService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		repository.NewRegionRepository(db),
		f.jwt,
		f.codes,
		f.outbox,
		nil,
		nil,
		nil,
		Config{
			RefreshTTL:         time.Hour,
			ActivationTTL:      1000 * time.Second,
			ResetTTL:           15 * time.Minute,
			RefreshTokenPepper: "pepper",
			CodePepper:         "code-pepper",
		},
	)
	return f
}

func (f *fixture) lastCode(t *testing.T, to string) string {
	t.Helper()
	msg, ok := f.outbox.Last(to)
	require.True(t, ok, "no mail sent to %s", to)
	m := codeInMail.FindStringSubmatch(msg.HTML)
	require.Len(t, m, 2)
	return m[1]
}

func (f *fixture) registerAndActivate(t *testing.T, username, email string, master bool) *LoginResult {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, RegisterRequest{FullName: "Test " + username, Email: email, Username: username, Password: "secret123", IsMaster: master})
	require.NoError(t, err)
	res, err := f.svc.Activate(ctx, email, f.lastCode(t, email))
	require.NoError(t, err)
	return res
}

func TestRegister_StoresPendingUntilActivated(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	out, err := f.svc.Register(ctx, RegisterRequest{FullName: "Malika", Email: "Malika@X.io", Username: "malika", Password: "secret123", IsMaster: true})
	require.NoError(t, err)
	assert.Equal(t, "malika@x.io", out.Email)
	assert.True(t, out.IsMaster)

	var n int64
	require.NoError(t, f.db.Model(&domain.User{}).Count(&n).Error)
	assert.Zero(t, n)

	msg, ok := f.outbox.Last("malika@x.io")
	require.True(t, ok)
	assert.Equal(t, "Activate Your Account", msg.Subject)
	code := f.lastCode(t, "malika@x.io")
	assert.Len(t, code, 6)

	res, err := f.svc.Activate(ctx, "malika@x.io", code)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)

	claims, err := f.jwt.ValidateToken(res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "master", claims.Role)

	user, err := repository.NewUserRepository(f.db).GetByEmail(ctx, "malika@x.io")
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = f.svc.Activate(ctx, "malika@x.io", code)
	assert.ErrorIs(t, err, ErrInvalidActivation)
}

func TestRegister_RejectsTakenEmailAndUsername(t *testing.T) {
	f := setup(t)
	f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterRequest{FullName: "A", Email: "AZIZ@x.io", Username: "other", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = f.svc.Register(ctx, RegisterRequest{FullName: "A", Email: "new@x.io", Username: "aziz", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestActivate_UsernameClaimedMeanwhile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterRequest{FullName: "Aziz", Email: "aziz@x.io", Username: "aziz", Password: "secret123"})
	require.NoError(t, err)
	code := f.lastCode(t, "aziz@x.io")

	f.registerAndActivate(t, "aziz", "other@x.io", false)

	_, err = f.svc.Activate(ctx, "aziz@x.io", code)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestActivate_WrongOrExpiredCode(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterRequest{FullName: "A", Email: "a@x.io", Username: "a", Password: "secret123"})
	require.NoError(t, err)
	code := f.lastCode(t, "a@x.io")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = f.svc.Activate(ctx, "a@x.io", wrong)
	assert.ErrorIs(t, err, ErrInvalidActivation)

	_, err = f.svc.Activate(ctx, "nobody@x.io", code)
	assert.ErrorIs(t, err, ErrInvalidActivation)

	f.now = f.now.Add(1001 * time.Second)
	_, err = f.svc.Activate(ctx, "a@x.io", code)
	assert.ErrorIs(t, err, ErrInvalidActivation)
}

func TestLogin(t *testing.T) {
	f := setup(t)
	f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, LoginRequest{Username: "aziz", Password: "secret123"})
	require.NoError(t, err)
	assert.Empty(t, res.User.PasswordHash)
	assert.Equal(t, int64(900), res.Tokens.ExpiresIn)

	_, err = f.svc.Login(ctx, LoginRequest{Username: "aziz", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, f.db.Model(&domain.User{}).Where("username = ?", "aziz").Update("is_active", false).Error)
	_, err = f.svc.Login(ctx, LoginRequest{Username: "aziz", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefresh_RotatesAndDetectsReuse(t *testing.T) {
	f := setup(t)
	res := f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()

	first := res.Tokens.RefreshToken
	next, err := f.svc.Refresh(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, first, next.RefreshToken)

	_, err = f.svc.Refresh(ctx, first)
	assert.ErrorIs(t, err, ErrRefreshTokenReused)

	// the whole family is revoked after reuse
	_, err = f.svc.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenReused)

	_, err = f.svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_ReuseDetectedAfterCleanup(t *testing.T) {
	f := setup(t)
	res := f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()

	first := res.Tokens.RefreshToken
	_, err := f.svc.Refresh(ctx, first)
	require.NoError(t, err)

	_, err = repository.NewRefreshTokenRepository(f.db).DeleteStale(ctx, time.Now().UTC().Add(time.Minute), 30*24*time.Hour)
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, first)
	assert.ErrorIs(t, err, ErrRefreshTokenReused)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	f := setup(t)
	res := f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()

	require.NoError(t, f.svc.Logout(ctx, res.Tokens.RefreshToken))
	require.NoError(t, f.svc.Logout(ctx, "unknown"))

	_, err := f.svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.Error(t, err)
}

func TestPasswordReset(t *testing.T) {
	f := setup(t)
	res := f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.RequestPasswordReset(ctx, "ghost@x.io"), ErrUserNotFound)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "aziz@x.io"))
	msg, ok := f.outbox.Last("aziz@x.io")
	require.True(t, ok)
	assert.Equal(t, "Password Reset Confirmation", msg.Subject)
	code := f.lastCode(t, "aziz@x.io")

	// the old password keeps working until the code is confirmed
	_, err := f.svc.Login(ctx, LoginRequest{Username: "aziz", Password: "secret123"})
	require.NoError(t, err)

	err = f.svc.ConfirmPasswordReset(ctx, ResetPasswordConfirmRequest{Email: "aziz@x.io", ActivationCode: Code(code), NewPassword: "newpass1", ConfirmPassword: "different"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	err = f.svc.ConfirmPasswordReset(ctx, ResetPasswordConfirmRequest{Email: "aziz@x.io", ActivationCode: Code(wrong), NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	err = f.svc.ConfirmPasswordReset(ctx, ResetPasswordConfirmRequest{Email: "ghost@x.io", ActivationCode: Code(code), NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = f.svc.ConfirmPasswordReset(ctx, ResetPasswordConfirmRequest{Email: "aziz@x.io", ActivationCode: Code(code), NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, LoginRequest{Username: "aziz", Password: "newpass1"})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, LoginRequest{Username: "aziz", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.Error(t, err)

	err = f.svc.ConfirmPasswordReset(ctx, ResetPasswordConfirmRequest{Email: "aziz@x.io", ActivationCode: Code(code), NewPassword: "again123", ConfirmPassword: "again123"})
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestCompleteProfile_ValidatesAddress(t *testing.T) {
	f := setup(t)
	res := f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	ctx := context.Background()
	regions := repository.NewRegionRepository(f.db)

	tashkent := &domain.Region{Name: "Tashkent"}
	samarkand := &domain.Region{Name: "Samarkand"}
	require.NoError(t, regions.CreateRegion(ctx, tashkent))
	require.NoError(t, regions.CreateRegion(ctx, samarkand))
	yunusabad := &domain.District{Name: "Yunusabad", RegionID: tashkent.ID}
	require.NoError(t, regions.CreateDistrict(ctx, yunusabad))
	bodomzor := &domain.Mahalla{Name: "Bodomzor", DistrictID: yunusabad.ID}
	require.NoError(t, regions.CreateMahalla(ctx, bodomzor))

	_, err := f.svc.CompleteProfile(ctx, res.User.ID, CompleteProfileRequest{
		Phone:   "+998901112233",
		Address: AddressInput{Region: samarkand.ID, District: yunusabad.ID, Mahalla: bodomzor.ID},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "District does not belong to the region", verr.Message)

	_, err = f.svc.CompleteProfile(ctx, res.User.ID, CompleteProfileRequest{
		Phone:   "+998901112233",
		Address: AddressInput{Region: tashkent.ID, District: yunusabad.ID, Mahalla: 999},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Mahalla not found", verr.Message)

	user, err := f.svc.CompleteProfile(ctx, res.User.ID, CompleteProfileRequest{
		Phone:   "+998901112233",
		Gender:  "male",
		Address: AddressInput{Region: tashkent.ID, District: yunusabad.ID, Mahalla: bodomzor.ID, House: "12"},
	})
	require.NoError(t, err)
	assert.Equal(t, "+998901112233", user.PhoneValue())
	assert.Equal(t, domain.GenderMale, user.Gender)
	view := toProfile(user).Address
	require.NotNil(t, view)
	assert.Equal(t, "Tashkent", view.Region)
	assert.Equal(t, "Bodomzor", view.Mahalla)
	assert.Equal(t, "12", view.House)
}

func TestUpdateAndDeleteProfile(t *testing.T) {
	f := setup(t)
	aziz := f.registerAndActivate(t, "aziz", "aziz@x.io", false)
	malika := f.registerAndActivate(t, "malika", "malika@x.io", true)
	ctx := context.Background()

	user, err := f.svc.UpdateProfile(ctx, aziz.User.ID, UpdateProfileRequest{FullName: "Aziz Karimov", Phone: "+998900000001", Telegram: "@aziz"})
	require.NoError(t, err)
	assert.Equal(t, "Aziz Karimov", user.FullName)
	assert.Equal(t, "@aziz", user.Telegram)

	_, err = f.svc.UpdateProfile(ctx, malika.User.ID, UpdateProfileRequest{Phone: "+998900000001"})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	require.NoError(t, f.svc.DeleteProfile(ctx, aziz.User.ID))
	_, err = f.svc.Profile(ctx, aziz.User.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, f.svc.DeleteProfile(ctx, aziz.User.ID), ErrUnauthorized)
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[1-9]\d{5}$`, code)
	}
}
