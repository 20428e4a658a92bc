package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, LevelBronze},
		{99, LevelBronze},
		{100, LevelSilver},
		{499, LevelSilver},
		{500, LevelGold},
		{1999, LevelGold},
		{2000, LevelPlatinum},
		{10000, LevelPlatinum},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, LevelForPoints(tc.total), "total %d", tc.total)
	}
}

func TestBuildPointsStatusProgress(t *testing.T) {
	status := buildPointsStatus(50)
	assert.Equal(t, LevelBronze, status.CurrentLevel)
	assert.Equal(t, LevelSilver, status.NextLevel)
	assert.Equal(t, 100, status.TargetPoints)
	assert.InDelta(t, 50.0, status.Progress, 0.001)

	status = buildPointsStatus(300)
	assert.Equal(t, LevelSilver, status.CurrentLevel)
	assert.Equal(t, LevelGold, status.NextLevel)
	assert.Equal(t, 500, status.TargetPoints)
	assert.InDelta(t, 50.0, status.Progress, 0.001)
}

func TestBuildPointsStatusPlatinumIsTerminal(t *testing.T) {
	status := buildPointsStatus(2500)
	assert.Equal(t, LevelPlatinum, status.CurrentLevel)
	assert.Equal(t, "max", status.NextLevel)
	assert.InDelta(t, 100.0, status.Progress, 0.001)
}
