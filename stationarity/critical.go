package stationarity

// asymptotic 1%, 5% and 10% critical values from MacKinnon (2010) response surfaces for a single
// series
var criticalValues = map[Regression][3]float64{
	RegressionNone:          {-2.5658, -1.9393, -1.6156},
	RegressionConstant:      {-3.4336, -2.8621, -2.5671},
	RegressionConstantTrend: {-3.9638, -3.4126, -3.1279},
}

// CriticalValues returns the 1%, 5% and 10% asymptotic critical values for regression
func CriticalValues(regression Regression) (map[string]float64, error) {
	crit, exists := criticalValues[regression]
	if !exists {
		return nil, ErrUnknownRegression
	}
	return map[string]float64{
		"1%":  crit[0],
		"5%":  crit[1],
		"10%": crit[2],
	}, nil
}
