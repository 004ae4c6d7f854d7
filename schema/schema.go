// Package schema has models, defaults and enumerations for all parts of rankcast.
package schema
