package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobSignal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		job     JobSignal
		wantErr bool
	}{
		{"empty job is valid", JobSignal{}, false},
		{"known level", JobSignal{ExperienceLevel: LevelSenior}, false},
		{"unknown level", JobSignal{ExperienceLevel: "wizard"}, true},
		{"negative applications", JobSignal{ApplicationsCount: -3}, true},
		{"negative salary", JobSignal{SalaryMin: Float(-1)}, true},
		{"inverted experience", JobSignal{MinExperience: Int(5), MaxExperience: Int(2)}, true},
		{"inverted salary", JobSignal{SalaryMin: Float(200), SalaryMax: Float(100)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobSignal_RemoteFriendly(t *testing.T) {
	assert.True(t, (&JobSignal{IsRemote: true}).RemoteFriendly())
	assert.True(t, (&JobSignal{JobType: "Remote Contract"}).RemoteFriendly())
	assert.False(t, (&JobSignal{JobType: "full-time"}).RemoteFriendly())
}

func TestJobSignal_DaysOld(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, (&JobSignal{}).DaysOld(now))
	assert.Equal(t, 2, (&JobSignal{CreatedAt: now.Add(-50 * time.Hour)}).DaysOld(now))
	assert.Equal(t, 0, (&JobSignal{CreatedAt: now.Add(time.Hour)}).DaysOld(now))
}
