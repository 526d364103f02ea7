// Package model defines shared settings structures.
package model

import "time"

// QuizSettings controls a quiz session.
type QuizSettings struct {
	Shuffle  bool
	BankPath string
	Answers  []int
}

// ROISettings holds calculator inputs gathered from flags and config.
// Zero values mean the field was not provided.
type ROISettings struct {
	ManualMinutes   float64
	Frequency       string
	HourlyRate      float64
	MonthlyToolCost float64
	Task            string
	SavingsPercent  *float64
}

// DemoSettings selects a demo and its tick rate.
type DemoSettings struct {
	ID   string
	Tick time.Duration
}

// LogSettings controls the log file.
type LogSettings struct {
	Level string
	File  string
}
