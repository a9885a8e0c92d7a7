package util

// RedactToken masks a bearer credential for diagnostic output. A short
// prefix is kept so different credentials stay distinguishable in logs;
// anything short enough to be mostly prefix is masked entirely.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:5] + "****"
}
