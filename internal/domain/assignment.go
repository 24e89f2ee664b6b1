package domain

import "time"

// ObjectLabel is a named qualification tag (for example a required
// certification such as "VCA-VOL"). Labels gate which employees may work a
// given assignment.
type ObjectLabel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Assignment is a client work location. An empty RequiredLabels set means the
// assignment carries no qualification restriction.
type Assignment struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	RequiredLabels []ObjectLabel `json:"requiredLabels"`
	CreatedAt      time.Time     `json:"createdAt"`
	Version        int32         `json:"-"`
}
