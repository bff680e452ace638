// Package kerngo provides positive-definite kernel functions for machine
// learning. The building blocks live in the sub-packages:
//
//   - pairwise computes the scalar statistics (scalar product, squared
//     distance, weighted forms), their gradients, and batched Gram
//     matrices via dense BLAS multiplies.
//   - link implements the composition classes, scalar link functions of
//     a statistic value with derivatives for parameter learning.
//   - kernel composes one link class with one statistic kind into a
//     kernel, evaluates it on pairs and matrices via the chain rule, and
//     provides the named constructors (Gaussian, Laplacian, Periodic,
//     Rational Quadratic, Matérn, Polynomial, Linear, Sigmoid).
//
// The package itself holds no code; start with package kernel.
package kerngo
