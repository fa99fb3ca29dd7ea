package services

import "yogurt-cleaning/internal/models"

// Measure-based resolution of a bundle's base duration and price against a
// concrete cleaning object. Both functions are pure: they take the running
// total accumulated so far for the order and return the new total, so
// several room-measured bundles in one order stack deterministically and
// repeated calls never leak state between orders.
//
// Policy per measure:
//   - room: base/2 per room beyond the first, added to the total
//   - apartment: flat base, replaces the total
//   - square_meter: base scaled by the object's square, replaces the total
//   - unit: base per window plus base per balcony, replaces the total
//
// An unrecognized measure leaves the total untouched.

// ResolveDuration returns the order's running duration total (hours) after
// applying the bundle to the cleaning object.
func ResolveDuration(bundle models.Bundle, object models.CleaningObject, total float64) float64 {
	switch bundle.Measure {
	case models.MeasureRoom:
		return total + bundle.Duration/2*float64(extraRooms(object))
	case models.MeasureApartment:
		return bundle.Duration
	case models.MeasureSquareMeter:
		return bundle.Duration * object.Square
	case models.MeasureUnit:
		return bundle.Duration*float64(object.NumberOfWindows) + bundle.Duration*float64(object.NumberOfBalconies)
	default:
		return total
	}
}

// ResolvePrice returns the order's running price total after applying the
// bundle to the cleaning object. Same scaling policy as ResolveDuration.
func ResolvePrice(bundle models.Bundle, object models.CleaningObject, total float64) float64 {
	switch bundle.Measure {
	case models.MeasureRoom:
		return total + bundle.Price/2*float64(extraRooms(object))
	case models.MeasureApartment:
		return bundle.Price
	case models.MeasureSquareMeter:
		return bundle.Price * object.Square
	case models.MeasureUnit:
		return bundle.Price*float64(object.NumberOfWindows) + bundle.Price*float64(object.NumberOfBalconies)
	default:
		return total
	}
}

// extraRooms counts rooms beyond the first. Objects with zero or negative
// room counts contribute nothing rather than a negative amount.
func extraRooms(object models.CleaningObject) int {
	if object.NumberOfRooms < 1 {
		return 0
	}
	return object.NumberOfRooms - 1
}
