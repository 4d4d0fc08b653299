package models

import "time"

type Account struct {
	BaseModel

	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

const (
	AccountDeletionPending = "pending"
	AccountDeletionFailed  = "failed"
	AccountDeletionDone    = "done"
)

// AccountDeletion tracks the cascade of an account removal,
// the record outlives the account so failed cascades can be retried.
type AccountDeletion struct {
	BaseModel

	AccountID  uint       `json:"account_id" gorm:"uniqueIndex"`
	Status     string     `json:"status"`
	Attempts   int        `json:"attempts"`
	LastError  string     `json:"last_error"`
	FinishedAt *time.Time `json:"finished_at"`
}
