// Package progress defines the progress types shared by the primality
// strategies, the orchestration layer and the presentation layers.
package progress
