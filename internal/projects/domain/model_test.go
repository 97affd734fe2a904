package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFeatures(t *testing.T) {
	assert.Equal(t, []string{"Login", "Cart", "Checkout"}, ParseFeatures("Login\n\n  Cart \r\nCheckout\n"))
	assert.Empty(t, ParseFeatures("  \n "))
}

func TestInputValidate(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan29 := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"ok", Input{Name: " Shop ", StartDate: jan1, Deadline: jan29}, nil},
		{"same day", Input{Name: "Shop", StartDate: jan1, Deadline: jan1}, nil},
		{"no name", Input{Name: " ", StartDate: jan1, Deadline: jan29}, ErrNameRequired},
		{"no dates", Input{Name: "Shop"}, ErrDatesRequired},
		{"reversed", Input{Name: "Shop", StartDate: jan29, Deadline: jan1}, ErrDeadlineBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInputValidate_NegativeSprintCountMeansAuto(t *testing.T) {
	in := Input{Name: "Shop", StartDate: time.Now(), Deadline: time.Now().AddDate(0, 1, 0), SprintCount: -3}
	assert.NoError(t, in.Validate())
	assert.Zero(t, in.SprintCount)
}

func TestTypeTaskDescription(t *testing.T) {
	assert.Equal(t, "Auto-generated task for Mobile App project", TypeTaskDescription("Mobile App"))
}
