package config

// Origin names the layer an effective setting came from.
type Origin string

const (
	OriginDefault Origin = "default"
	OriginFile    Origin = "file"
	OriginEnv     Origin = "env"
	OriginFlag    Origin = "flag"
)

// Origins maps settings keys to the layer that last set them.
type Origins map[string]Origin

// Keys lists the settings keys in display order.
func Keys() []string {
	return []string{"namespace", "extension", "output", "engine", "logLevel"}
}

// record marks every non-empty field of layer as coming from origin. The
// default layer is recorded for all keys, empty or not.
func (o Origins) record(layer Settings, origin Origin) {
	for _, key := range Keys() {
		v, _ := layer.Field(key)
		if v != "" || origin == OriginDefault {
			o[key] = origin
		}
	}
}
