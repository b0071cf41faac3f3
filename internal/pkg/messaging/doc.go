// Package messaging publishes messages to a broker through one
// broker-agnostic Publisher. Kafka, NATS and NSQ backends are available and
// selected by driver name with NewFromDriver.
package messaging
