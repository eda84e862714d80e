// SPDX-License-Identifier: MIT

// Package estimator provides streaming scalar estimators.
//
// Values are accumulated one at a time (or in batches) and the estimate is
// evaluated lazily: the first read after an addition recomputes, later reads
// return the cached result until the next Add or Clear.
//
//   - Variance tracks the running sum and sum of squares and reports the mean,
//     the population variance, the unbiased (sample) variance and the unbiased
//     standard deviation.
//   - Averager tracks only the arithmetic mean.
//
// An empty estimator evaluates to 0 everywhere. Estimators are not safe for
// concurrent mutation.
package estimator
