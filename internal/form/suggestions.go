package form

var (
	deviceClasses = []string{
		"apparent_power", "aqi", "atmospheric_pressure", "battery", "carbon_dioxide",
		"carbon_monoxide", "current", "distance", "duration", "energy", "frequency",
		"gas", "humidity", "illuminance", "moisture", "monetary", "nitrogen_dioxide",
		"ozone", "pm1", "pm10", "pm25", "power", "power_factor", "precipitation",
		"pressure", "reactive_power", "signal_strength", "sound_pressure", "speed",
		"temperature", "voltage", "volume", "water", "weight", "wind_speed",
	}
	stateClasses     = []string{"measurement", "total", "total_increasing"}
	entityCategories = []string{"config", "diagnostic"}
)

// suggestionsFor returns completion values for well-known string keys.
func suggestionsFor(key string) []string {
	switch key {
	case "device_class":
		return deviceClasses
	case "state_class":
		return stateClasses
	case "entity_category":
		return entityCategories
	}
	return nil
}
