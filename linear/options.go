package linear

// Option configures LeastSquares.
type Option func(*LeastSquares)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(ls *LeastSquares) {
		ls.fitIntercept = fit
	}
}
