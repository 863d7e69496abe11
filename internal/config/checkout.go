package config

import (
	"os"
	"strconv"
	"time"
)

type CheckoutConfig struct {
	ProcessingDelay time.Duration // simulated payment latency before allocation
	CartTTL         time.Duration // how long an idle cart survives in storage
	PurchaseHistory int           // max records kept per user, newest first
}

func LoadCheckoutConfig() *CheckoutConfig {
	return &CheckoutConfig{
		ProcessingDelay: getEnvAsDuration("CHECKOUT_PROCESSING_DELAY", 2*time.Second),
		CartTTL:         getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		PurchaseHistory: getEnvAsInt("PURCHASE_HISTORY_LIMIT", 100),
	}
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
