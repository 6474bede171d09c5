package config

// EnvVar is a single environment variable of a profile.
type EnvVar struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// EnvironmentProfiles maps a profile name to its ordered variables.
type EnvironmentProfiles map[string][]EnvVar

// DefaultProfile is the profile selected when none is given.
const DefaultProfile = "dev"

// Vars returns the variables of the named profile with empty keys dropped
// and duplicate keys collapsed: the first occurrence keeps its position and
// the last occurrence supplies the value.
func (p EnvironmentProfiles) Vars(profile string) []EnvVar {
	return dedupeVars(p[profile])
}

// Has reports whether the named profile declares key.
func (p EnvironmentProfiles) Has(profile, key string) bool {
	for _, v := range p[profile] {
		if v.Key == key {
			return true
		}
	}
	return false
}

func dedupeVars(vars []EnvVar) []EnvVar {
	if len(vars) == 0 {
		return vars
	}
	index := make(map[string]int, len(vars))
	out := make([]EnvVar, 0, len(vars))
	for _, v := range vars {
		if v.Key == "" {
			continue
		}
		if i, ok := index[v.Key]; ok {
			out[i].Value = v.Value
			continue
		}
		index[v.Key] = len(out)
		out = append(out, v)
	}
	return out
}

// normalizeProfiles collapses duplicates in every profile after a load.
func normalizeProfiles(p EnvironmentProfiles) {
	for name, vars := range p {
		p[name] = dedupeVars(vars)
	}
}
