package domain

import (
	"fmt"
	"math"
)

// Caption is a single scrolling comment as supplied by the caption source.
// Time is the nominal appearance time in seconds from the start of playback.
type Caption struct {
	ID    string  `json:"id" yaml:"id"`
	Text  string  `json:"text" yaml:"text"`
	Time  float64 `json:"time" yaml:"time"`
	Color string  `json:"color" yaml:"color"`
}

func (c Caption) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidCaption)
	}
	if math.IsNaN(c.Time) || math.IsInf(c.Time, 0) || c.Time < 0 {
		return fmt.Errorf("%w: caption %s has time %v", ErrInvalidCaption, c.ID, c.Time)
	}
	return nil
}

// ValidateCaptions checks every caption and rejects repeated ids.
// The window manager keys its cache by id, so a repeated id would be
// silently dropped at admission.
func ValidateCaptions(captions []Caption) error {
	seen := make(map[string]struct{}, len(captions))
	for _, c := range captions {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCaptionID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// ScheduledCaption is a caption that has been given a lane and an actual
// start time. It is created once on admission and never modified.
type ScheduledCaption struct {
	ID          string
	Text        string
	Color       string
	Track       int
	Width       float64
	NominalTime float64
	StartTime   float64
}

// VisibleCaption is the per-frame position of a caption currently on screen.
type VisibleCaption struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Color      string  `json:"color"`
	Track      int     `json:"track"`
	TranslateX float64 `json:"translate_x"`
	Opacity    float64 `json:"opacity"`
}

// FormatTime renders a playback offset as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	m := int(math.Floor(seconds / 60))
	s := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", m, s)
}
