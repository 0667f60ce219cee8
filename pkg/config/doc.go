// Package config provides shared configuration structures and environment
// variable helpers for simple-clients services.
//
// Structs carry cleanenv tags so services can load them with
// cleanenv.ReadEnv, and each has a NewXxxConfigFromEnv constructor for
// programmatic use.
package config
