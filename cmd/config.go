package cmd

import (
	"fmt"
	"time"
)

// Config carries everything the service reads from its environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AmqpURL is optional; when empty the carrier status queue consumer is
	// not started and only the webhook ingestion path is available.
	AmqpURL string

	// LockAcquireTimeout bounds how long a transition waits for its order lock.
	LockAcquireTimeout time.Duration

	// StaleShipmentThreshold is the silence window after which the audit job
	// flags a shipment.
	StaleShipmentThreshold time.Duration
}

// PostgresDSN assembles the connection string for the configured database.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
