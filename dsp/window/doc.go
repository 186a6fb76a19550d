// Package window provides the cosine-sum analysis windows used ahead of
// spectral measurements.
package window
