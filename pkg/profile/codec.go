package profile

import "gopkg.in/yaml.v3"

// FromYAML deserializes a Profile from its on-disk YAML representation.
// Deserialization failure is the caller's responsibility to map onto
// instance.ErrInvalidProfile.
func FromYAML(text []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(text, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToYAML serializes a Profile to its on-disk YAML representation.
func ToYAML(p *Profile) ([]byte, error) {
	return yaml.Marshal(p)
}
