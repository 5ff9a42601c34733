package patterns

// Raw pattern declarations. Order matters: matchers are exposed in
// declaration order, and the first matcher to fire on a line determines the
// pattern string attached to the finding for display.

// loosePatterns are the base secret patterns used in loose mode.
var loosePatterns = []string{
	`access[_-]?token["'=:\s]+[A-Za-z0-9_.-]{10,}`,
	`auth[_-]?token["'=:\s]+[A-Za-z0-9_.-]{10,}`,
	`apikey["'=:\s]+[A-Za-z0-9_.-]{10,}`,
	`client[_-]?secret["'=:\s]+[A-Za-z0-9_.-]{10,}`,
	`secret["'=:\s]+[A-Za-z0-9_.-]{10,}`,
	`Bearer\s+[A-Za-z0-9_-]+`,
	`AKIA[0-9A-Z]{16}`,
	`sk_live_[0-9a-zA-Z]{24}`,
	`sk_test_[0-9a-zA-Z]{24}`,
	`token["'=:\s]+[A-Za-z0-9_.-]{10,}`,
	`password["'=:\s]+[A-Za-z0-9_.-]{8,}`,
}

// additionalPatterns extend loose mode with service-specific heuristics.
var additionalPatterns = []string{
	// AWS
	`aws.*access.*key.*=\s*[A-Za-z0-9/+=]{20,}`,
	`aws.*secret.*key.*=\s*[A-Za-z0-9/+=]{20,}`,

	// Private keys
	`-----BEGIN.*PRIVATE KEY`,

	// Generic keys and tokens
	`[a-zA-Z0-9_-]*:[a-zA-Z0-9_-]+@[a-zA-Z0-9]+`,
	`eyJ[A-Za-z0-9_-]{20,}`,
	`gh[pousr]_[A-Za-z0-9_]{20,}`,

	// Cloud providers
	`AIza[0-9A-Za-z_-]{30,}`,
	`ya29\.[0-9A-Za-z_-]+`,

	// Service credentials
	`client_id\s*=\s*[a-zA-Z0-9._-]+`,
	`client_secret\s*=\s*[a-zA-Z0-9._-]+`,
	`api_key\s*=\s*[a-zA-Z0-9._-]+`,
	`access_token\s*=\s*[a-zA-Z0-9._-]+`,

	// Database connection strings
	`postgres(ql)?://[^:]+:[^@]+@[^/]+`,
	`mysql://[^:]+:[^@]+@[^/]+`,
	`mongodb(\+srv)?://[^:]+:[^@]+@[^/]+`,
	`redis://[^:]+:[^@]+@.+`,
	`DATABASE_URL\s*=\s*.+:.+@.+`,

	// Payment services
	`sk_live_[0-9a-zA-Z]{24}`,
	`rk_live_[0-9a-zA-Z]{24}`,

	// Slack
	`xox[baprs]-[0-9a-zA-Z]{10,}`,
	`T[a-zA-Z0-9_]{8}/B[a-zA-Z0-9_]{8}/[a-zA-Z0-9_]{24}`,

	// Password assignments
	`password\s*=\s*[^\s]+`,
	`pwd\s*=\s*[^\s]+`,
	`pass\s*=\s*[^\s]+`,

	// Dangerous logging
	`console\.log.*pass`,
	`console\.log.*password`,
	`console\.log.*secret`,
	`console\.log.*token`,
	`console\.log.*key`,
	`console\.log.*cred`,
	`print.*pass`,
	`print.*password`,
	`print.*secret`,
	`print.*token`,
	`print.*key`,
	`echo.*password`,
	`echo.*secret`,
	`echo.*token`,
	`echo.*key`,

	// Return/response exposure
	`return.*password`,
	`return.*token`,
	`return.*secret`,
	`return.*key`,
	`res\.send.*password`,
	`res\.send.*token`,
	`res\.send.*secret`,
	`res\.json.*password`,
	`res\.json.*token`,
	`res\.json.*secret`,

	// INI section headers
	`\[.*api.*\]`,
	`\[.*key.*\]`,
	`\[.*secret.*\]`,
	`\[.*credential.*\]`,
	`\[.*auth.*\]`,
}

// strictPatterns are the short broad keywords used in strict mode.
var strictPatterns = []string{
	`token`,
	`secret`,
	`password`,
	`auth`,
	`client`,
}

// overridePatterns unconditionally force HIGH severity when they produced
// the match.
var overridePatterns = []string{
	// Client secrets
	`client_secret\s*=\s*[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`,
	`client_secret\s*=\s*[a-zA-Z0-9._-]+`,

	// Actual quoted values
	`token\s*=\s*["'][0-9a-zA-Z._=/-]{16,}["']`,
	`secret\s*=\s*["'][0-9a-zA-Z._=/-]{16,}["']`,
	`password\s*=\s*["'][0-9a-zA-Z._=/-]{8,}["']`,
	`access_key\s*=\s*["'][0-9a-zA-Z]{16,}["']`,

	// Database URLs and credentials
	`DATABASE_URL\s*=\s*[^=]+(:|%3A)[^=]+(@|%40)`,
	`(POSTGRES|SQL|DB|MYSQL|MONGO)(_)?PASS(WORD)?\s*=\s*[^\s$]+`,

	// Password assignments in config/env files
	`PASSWORD\s*=\s*[^\s$]+`,
	`PASS\s*=\s*[^\s$]+`,
	`PWD\s*=\s*[^\s$]+`,
}

// configPatterns apply only to files classified as configuration files.
var configPatterns = []string{
	`password\s*=\s*[^\s$]+`,
	`secret\s*=\s*[^\s$]+`,
	`key\s*=\s*[^\s$]+`,
	`token\s*=\s*[^\s$]+`,
	`auth\s*=\s*[^\s$]+`,
	`credential\s*=\s*[^\s$]+`,
	`api[_-]?key\s*=\s*[^\s$]+`,
	`database\s*=\s*[^\s$]+`,
	`user\s*=\s*[^\s$]+`,
	`pass\s*=\s*[^\s$]+`,
	`pwd\s*=\s*[^\s$]+`,
}

// exclusionPatterns veto a line from consideration entirely.
var exclusionPatterns = []string{
	// Simple debug statements
	`console\.log\(["'][^"']*["']\)`,

	// Test and example code
	`example|sample|mock|dummy|test|placeholder|template|default`,

	// Comments
	`\s*//|\s*#`,

	// TODOs and FIXMEs
	`TODO|FIXME`,

	// Development URLs
	`github\.com|localhost|127\.0\.1`,

	// Docstrings about tokens
	`token management|token information|token endpoints`,

	// Variable assignments without actual secrets
	`token\s*=\s*\w+\.json`,
	`token\s*=\s*\w+\.copy`,

	// Function parameters that pass tokens through
	`refresh_token=refresh_token`,

	// Local host addresses
	`0\.0\.0\.0`,
}
