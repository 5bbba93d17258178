package models

import (
	"time"
)

// SpecialSun represents an important date a man must not forget
type SpecialSun struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	Name             string     `json:"name" db:"name"`
	RecipientType    string     `json:"recipient_type" db:"recipient_type"`
	OccasionType     string     `json:"occasion_type" db:"occasion_type"`
	Date             time.Time  `json:"date" db:"date"`
	ReminderDays     int        `json:"reminder_days" db:"reminder_days"`
	Notes            string     `json:"notes,omitempty" db:"notes"`
	Reminder14Sent   bool       `json:"reminder_14_sent" db:"reminder_14_sent"`
	Reminder4Sent    bool       `json:"reminder_4_sent" db:"reminder_4_sent"`
	Reminder4Enabled bool       `json:"reminder_4_enabled" db:"reminder_4_enabled"`
	ManRemembered    bool       `json:"man_remembered" db:"man_remembered"`
	ManRememberedAt  *time.Time `json:"man_remembered_at,omitempty" db:"man_remembered_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Reminder lead times in days
const (
	ReminderLeadLong  = 14
	ReminderLeadShort = 4
)

// ReminderJob is the message published to the queue when a reminder is due
type ReminderJob struct {
	SpecialSunID  string    `json:"special_sun_id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	RecipientType string    `json:"recipient_type"`
	OccasionType  string    `json:"occasion_type"`
	Date          time.Time `json:"date"`
	LeadDays      int       `json:"lead_days"`
	Notes         string    `json:"notes,omitempty"`
}
