package ui

import "time"

type tickMsg time.Time
