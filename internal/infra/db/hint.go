package db

import "strings"

// ConnectionHint maps well-known driver error text to a human-readable hint
// returned alongside generic 500 responses. The underlying error is never
// altered; an empty string means no hint applies.
func ConnectionHint(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()

	switch {
	case strings.Contains(msg, "bad auth") || strings.Contains(msg, "authentication failed"):
		return "Authentication failed. Check username/password, URL-encode special characters (@ : / #), and ensure the URI is correct."
	case strings.Contains(msg, "SASL") || strings.Contains(msg, "SCRAM"):
		return "SASL authentication error. For MongoDB Atlas, ensure authMechanism=SCRAM-SHA-1 is in the URI."
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "ECONNREFUSED"):
		return "Connection refused. Check that the database server is running and accessible."
	case strings.Contains(msg, "SSL") || strings.Contains(msg, "TLS"):
		return "SSL/TLS error. Ensure your database supports SSL connections."
	}
	return ""
}
