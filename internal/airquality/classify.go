package airquality

// Level identifies an AQI health band.
type Level string

const (
	LevelGood               Level = "good"
	LevelModerate           Level = "moderate"
	LevelUnhealthySensitive Level = "unhealthy-sensitive"
	LevelUnhealthy          Level = "unhealthy"
	LevelVeryUnhealthy      Level = "very-unhealthy"
	LevelHazardous          Level = "hazardous"
)

// Category describes an AQI health band.
type Category struct {
	// Level is the machine-readable band identifier.
	Level Level

	// Label is the band's display name.
	Label string

	// ColorHex is the conventional display color for the band.
	ColorHex string

	// Advisory is the health guidance shown for the band.
	Advisory string
}

// Categories for each AQI band.
var (
	CategoryGood = Category{
		Level:    LevelGood,
		Label:    "Good",
		ColorHex: "#009966",
		Advisory: "Air quality is satisfactory, and air pollution poses little or no risk.",
	}
	CategoryModerate = Category{
		Level:    LevelModerate,
		Label:    "Moderate",
		ColorHex: "#ffde33",
		Advisory: "Air quality is acceptable. There may be a risk for people who are unusually sensitive to air pollution.",
	}
	CategoryUnhealthySensitive = Category{
		Level:    LevelUnhealthySensitive,
		Label:    "Unhealthy for Sensitive Groups",
		ColorHex: "#ff9933",
		Advisory: "Members of sensitive groups may experience health effects. The general public is less likely to be affected.",
	}
	CategoryUnhealthy = Category{
		Level:    LevelUnhealthy,
		Label:    "Unhealthy",
		ColorHex: "#cc0033",
		Advisory: "Some members of the general public may experience health effects; members of sensitive groups may experience more serious health effects.",
	}
	CategoryVeryUnhealthy = Category{
		Level:    LevelVeryUnhealthy,
		Label:    "Very Unhealthy",
		ColorHex: "#660099",
		Advisory: "Health alert: the risk of health effects is increased for everyone.",
	}
	CategoryHazardous = Category{
		Level:    LevelHazardous,
		Label:    "Hazardous",
		ColorHex: "#7e0023",
		Advisory: "Health warning of emergency conditions: everyone is more likely to be affected.",
	}
)

// Classify maps an AQI value to its health band using the standard
// breakpoints. Band upper bounds are inclusive, so 50 is still good.
func Classify(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategoryUnhealthySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
