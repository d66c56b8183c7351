package linear

// Option configures a Regression.
type Option func(*Regression)

// WithFitIntercept sets whether the model fits an intercept term. The
// global average model passes an explicit ones column instead, so it
// disables this.
func WithFitIntercept(fit bool) Option {
	return func(lr *Regression) {
		lr.fitIntercept = fit
	}
}
