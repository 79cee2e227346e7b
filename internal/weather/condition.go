package weather

import "github.com/alexanderramin/siterisk/internal/domain"

const (
	windyKph = 30
	gustyKph = 50
)

// MapCondition maps a WeatherAPI condition code onto a weather type. Ranges
// are checked in order, so rain codes inside the snow range stay rain.
// Unlisted codes become wind when it is blowing hard enough, else clear.
func MapCondition(code int, windKph, gustKph float64) domain.WeatherType {
	switch {
	case code == 1000:
		return domain.WeatherClear
	case code == 1003, code == 1006, code == 1009:
		return domain.WeatherCloud
	case code == 1030, code == 1135, code == 1147:
		return domain.WeatherFog
	case code == 1063, between(code, 1150, 1201), between(code, 1240, 1246), code == 1273, code == 1276:
		return domain.WeatherDownpour
	case between(code, 1066, 1237), between(code, 1255, 1282):
		return domain.WeatherBlizzard
	case windKph > windyKph || gustKph > gustyKph:
		return domain.WeatherWind
	default:
		return domain.WeatherClear
	}
}

func between(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
