package errors

import "strings"

// ErrorHint provides an actionable resolution hint for a common failure
// pattern seen across deploy runs.
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommonErrorHints maps substrings seen in engine/repository errors to
// actionable hints. Matched case-insensitively by EnhanceErrorWithHint.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "unknown repository label",
		Hint:       "A purl names a repository tridentctl has no backend for",
		Resolution: "Check the purl's repository label against the repositories registered for this profile",
	},
	{
		Pattern:    "missing version slot",
		Hint:       "A purl is missing its @version segment",
		Resolution: "Pin every layer entry to a concrete version, e.g. pkg:modrinth/sodium@mc1.20.1-0.5.8",
	},
	{
		Pattern:    "notfound",
		Hint:       "The project or version does not exist in the named repository",
		Resolution: "Verify the project id and version id against the repository's own listing",
	},
	{
		Pattern:    "unstablenetwork",
		Hint:       "A transient network failure interrupted resolution",
		Resolution: "Re-run the deploy; each run starts resolution fresh",
	},
	{
		Pattern:    "invalidformat",
		Hint:       "A purl string does not match pkg:<repo>/<project>@<version>",
		Resolution: "Fix the malformed entry in the profile's layer content",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "A referenced path does not exist",
		Resolution: "Verify the profile path and instance home are correct",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions on the instance or storage root",
		Resolution: "Check file ownership and permissions under the trident root",
	},
	{
		Pattern:    "invalid profile",
		Hint:       "The profile YAML failed to parse",
		Resolution: "Validate the profile file's YAML syntax",
	},
}

// GetHint returns a combined hint string for err, or "" if no pattern
// matches.
func GetHint(err error) string {
	if err == nil {
		return ""
	}
	errStr := strings.ToLower(err.Error())
	for _, h := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(h.Pattern)) {
			return h.Hint + ": " + h.Resolution
		}
	}
	return ""
}

// EnhanceErrorWithHint appends a matching hint to err's message, if any.
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	for _, h := range CommonErrorHints {
		if strings.Contains(strings.ToLower(errStr), strings.ToLower(h.Pattern)) {
			return errStr + "\n  hint: " + h.Hint + ": " + h.Resolution
		}
	}
	return errStr
}

// RegisterHint extends the hint table with a project-specific pattern.
func RegisterHint(pattern, hint, resolution string) {
	CommonErrorHints = append(CommonErrorHints, ErrorHint{Pattern: pattern, Hint: hint, Resolution: resolution})
}
