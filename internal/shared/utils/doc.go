// Package utils provides small shared helpers.
package utils
