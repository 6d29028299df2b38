package utils

import "time"

// TodayISO devolve a data de hoje no formato usado na coluna Date
func TodayISO() string {
	return time.Now().Format("2006-01-02")
}

// ParseDate interpreta uma data pura no formato 2006-01-02
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
