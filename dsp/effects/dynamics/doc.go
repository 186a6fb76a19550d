// Package dynamics provides dynamic-range processors.
//
// Included processors:
//   - Compressor: peak-detecting hard-knee compressor with a linked
//     multi-channel detector.
package dynamics
