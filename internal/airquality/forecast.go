package airquality

// forecastOrder fixes which pollutant series are charted and in what order.
var forecastOrder = []struct {
	pollutant Pollutant
	label     string
}{
	{PollutantPM25, "PM2.5"},
	{PollutantPM10, "PM10"},
	{PollutantO3, "O3"},
}

// ForecastSeries is a chart-ready reshaping of a station forecast.
type ForecastSeries struct {
	// Dates labels the shared x axis.
	Dates []string

	// Series holds one dataset per charted pollutant, in PM2.5, PM10, O3
	// order.
	Series []PollutantSeries
}

// PollutantSeries is one charted dataset of daily average values.
type PollutantSeries struct {
	Label  string
	Values []float64
}

// FormatForecast reshapes a station forecast into chart-ready series of
// daily averages, preserving the day order the provider supplied.
//
// Returns nil when forecast is nil or no charted pollutant has data. Date
// labels come from the first charted pollutant that has data; all series
// are assumed to share that date axis.
func FormatForecast(forecast *Forecast) *ForecastSeries {
	if forecast == nil {
		return nil
	}

	var dates []string
	var series []PollutantSeries

	for _, entry := range forecastOrder {
		points := forecast.Daily[entry.pollutant]
		if len(points) == 0 {
			continue
		}

		if dates == nil {
			dates = make([]string, 0, len(points))
			for _, pt := range points {
				dates = append(dates, pt.Date)
			}
		}

		values := make([]float64, 0, len(points))
		for _, pt := range points {
			values = append(values, pt.Avg)
		}

		series = append(series, PollutantSeries{Label: entry.label, Values: values})
	}

	if len(series) == 0 {
		return nil
	}

	return &ForecastSeries{Dates: dates, Series: series}
}
