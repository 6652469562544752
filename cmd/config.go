package cmd

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	RedisAddr           string
	GeocodeBaseURL      string
	RoutingBaseURL      string
	CredentialParameter string
	AWSRegion           string
	MetricQueueCapacity int
	BaseAddresses       map[string]string
}

// DefaultBaseAddresses is the built-in company directory used when
// COMPANY_BASE_ADDRESSES is not configured.
func DefaultBaseAddresses() map[string]string {
	return map[string]string{
		"QuickFix": "1614 10th St S, Arlington, VA 22204",
	}
}
