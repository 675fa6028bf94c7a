// Package jsonscan finds brace-delimited JSON objects in free text and can
// resume a scan across increments.
package jsonscan
