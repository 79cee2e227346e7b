package predictor

import "github.com/alexanderramin/siterisk/internal/domain"

// TimeLayout is the "YYYY-MM-DD HH:mm:ss" format the model was trained on.
const TimeLayout = "2006-01-02 15:04:05"

// Input is the record sent to the model for one task.
type Input struct {
	Time             string  `json:"time"`
	Weather          string  `json:"weather"`
	Temperature      float64 `json:"temperature"`
	Humidity         float64 `json:"humidity"`
	ConstructionType string  `json:"constructionType"`
	Process          string  `json:"process"`
	ProgressRate     int     `json:"progressRate"`

	// WorkerCount is an int or a bucket string depending on the encoding.
	WorkerCount any `json:"workerCount"`
}

var modelWeather = map[domain.WeatherType]string{
	domain.WeatherClear:    "sunny",
	domain.WeatherCloud:    "cloudy",
	domain.WeatherFog:      "foggy",
	domain.WeatherWind:     "windy",
	domain.WeatherDownpour: "rainy",
	domain.WeatherBlizzard: "snowy",
}

// WeatherLabel maps a canonical weather type into the given vocabulary.
// Unknown types are sent as clear.
func WeatherLabel(w domain.WeatherType, vocab WeatherVocabulary) string {
	if !domain.ValidWeatherTypes[w] {
		w = domain.WeatherClear
	}
	if vocab == VocabCanonical {
		return string(w)
	}
	return modelWeather[w]
}

// BuildInput assembles the model input from a task and its environment.
func BuildInput(task domain.ConstructionTask, env domain.Environment, enc WorkerEncoding, vocab WeatherVocabulary) Input {
	in := Input{
		Time:             task.StartTime.Format(TimeLayout),
		Weather:          WeatherLabel(env.Weather, vocab),
		Temperature:      env.Temperature,
		Humidity:         env.Humidity,
		ConstructionType: task.ConstructionType(),
		Process:          task.Process,
		ProgressRate:     task.ProgressRate,
	}
	if enc == EncodeWorkersInt {
		in.WorkerCount = task.Workers
	} else {
		in.WorkerCount = string(domain.BucketWorkers(task.Workers))
	}
	return in
}
