package domain

// Environment is the site weather at the time a task starts.
type Environment struct {
	Weather     WeatherType
	Temperature float64 // °C
	Humidity    float64 // %
}

// DefaultEnvironment is used when no weather observation is available.
func DefaultEnvironment() Environment {
	return Environment{Weather: WeatherClear, Temperature: 25, Humidity: 60}
}
