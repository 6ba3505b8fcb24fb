package schedule

import "aura/internal/domain"

type TimeInput struct {
	Day       int64  `json:"day" validate:"required,gt=0"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

type CreateTimesRequest struct {
	Times []TimeInput `json:"times" validate:"required,min=1,dive"`
}

type TimeResponse struct {
	ID        int64  `json:"id"`
	Day       int64  `json:"day"`
	DayName   string `json:"day_name,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	User      int64  `json:"user"`
}

func toTimeResponse(t domain.WorkingTime) TimeResponse {
	out := TimeResponse{
		ID:        t.ID,
		Day:       t.DayID,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		User:      t.UserID,
	}
	if t.Day != nil {
		out.DayName = t.Day.Day
	}
	return out
}

func toTimeResponses(rows []domain.WorkingTime) []TimeResponse {
	out := make([]TimeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toTimeResponse(r))
	}
	return out
}
