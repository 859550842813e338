package airquality_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejalthool/AQI/internal/airquality"
)

func TestAggregate_MeanAQIRounded(t *testing.T) {
	tests := []struct {
		name string
		aqis []int
		want int
	}{
		{"exact mean", []int{50, 150}, 100},
		{"rounds to nearest", []int{40, 45, 50}, 45},
		{"rounds half up", []int{41, 42}, 42},
		{"single station", []int{33}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feeds := make([]*airquality.Feed, 0, len(tt.aqis))
			ranked := make([]*airquality.Station, 0, len(tt.aqis))
			for i, aqi := range tt.aqis {
				feeds = append(feeds, &airquality.Feed{StationUID: i, AQI: aqi, HasAQI: true})
				ranked = append(ranked, &airquality.Station{UID: i})
			}

			reading := airquality.Aggregate(feeds, ranked)
			require.NotNil(t, reading)
			assert.Equal(t, tt.want, reading.AQI)
		})
	}
}

func TestAggregate_PollutantPresenceFiltering(t *testing.T) {
	feeds := []*airquality.Feed{
		{AQI: 40, HasAQI: true, Readings: airquality.Readings{
			airquality.PollutantPM25: 10,
			airquality.PollutantO3:   30,
		}},
		{AQI: 60, HasAQI: true, Readings: airquality.Readings{
			airquality.PollutantPM25: 20,
		}},
	}
	ranked := []*airquality.Station{{UID: 1}, {UID: 2}}

	reading := airquality.Aggregate(feeds, ranked)
	require.NotNil(t, reading)

	// pm25 averages over both stations, o3 over only the one reporting it.
	assert.Equal(t, 15.0, reading.Pollutants[airquality.PollutantPM25])
	assert.Equal(t, 30.0, reading.Pollutants[airquality.PollutantO3])

	// A pollutant no station reported stays absent, not zero.
	_, ok := reading.Pollutants[airquality.PollutantNO2]
	assert.False(t, ok)
}

func TestAggregate_AllAbsentStaysAbsent(t *testing.T) {
	feeds := []*airquality.Feed{
		{AQI: 10, HasAQI: true},
		{AQI: 20, HasAQI: true},
	}

	reading := airquality.Aggregate(feeds, []*airquality.Station{{UID: 1}, {UID: 2}})
	require.NotNil(t, reading)
	assert.Empty(t, reading.Pollutants)
}

func TestAggregate_ZeroReadingIsNotAbsent(t *testing.T) {
	feeds := []*airquality.Feed{
		{AQI: 20, HasAQI: true, Readings: airquality.Readings{airquality.PollutantSO2: 0}},
		{AQI: 30, HasAQI: true, Readings: airquality.Readings{airquality.PollutantSO2: 10}},
	}

	reading := airquality.Aggregate(feeds, []*airquality.Station{{UID: 1}, {UID: 2}})
	require.NotNil(t, reading)

	v, ok := reading.Pollutants[airquality.PollutantSO2]
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
}

func TestAggregate_ObservedAtFromClosestStation(t *testing.T) {
	closest := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	other := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	feeds := []*airquality.Feed{
		{AQI: 10, HasAQI: true, ObservedAt: closest},
		{AQI: 20, HasAQI: true, ObservedAt: other},
	}

	reading := airquality.Aggregate(feeds, []*airquality.Station{{UID: 1}, {UID: 2}})
	require.NotNil(t, reading)
	assert.True(t, reading.ObservedAt.Equal(closest))
}

func TestAggregate_ContributionsInRankedOrder(t *testing.T) {
	feeds := []*airquality.Feed{
		{AQI: 40, HasAQI: true},
		{AQI: 60, HasAQI: true},
	}
	ranked := []*airquality.Station{
		{UID: 1, Name: "Vondelpark", DistanceKm: 1.2},
		{UID: 2, Name: "Westerpark", DistanceKm: 3.4},
	}

	reading := airquality.Aggregate(feeds, ranked)
	require.NotNil(t, reading)
	require.Len(t, reading.ContributingStations, 2)

	assert.Equal(t, "Vondelpark", reading.ContributingStations[0].Name)
	assert.Equal(t, 40, reading.ContributingStations[0].AQI)
	assert.Equal(t, 1.2, reading.ContributingStations[0].DistanceKm)

	assert.Equal(t, "Westerpark", reading.ContributingStations[1].Name)
	assert.Equal(t, 60, reading.ContributingStations[1].AQI)
	assert.Equal(t, 3.4, reading.ContributingStations[1].DistanceKm)

	assert.Equal(t, 50, reading.AQI)
}

func TestAggregate_SkipsStationsWithoutAQI(t *testing.T) {
	feeds := []*airquality.Feed{
		{AQI: 80, HasAQI: true},
		{HasAQI: false},
	}

	reading := airquality.Aggregate(feeds, []*airquality.Station{{UID: 1}, {UID: 2}})
	require.NotNil(t, reading)

	// Only the reporting station enters the mean, but both contributed.
	assert.Equal(t, 80, reading.AQI)
	assert.Len(t, reading.ContributingStations, 2)
}

func TestAggregate_EmptyFeeds(t *testing.T) {
	assert.Nil(t, airquality.Aggregate(nil, nil))
}
