// Package scheduling implements the slot and staff allocation rules for bath and
// grooming services.
//
// Staff are split into bathers and groomers. A bath goes to a free bather first and
// falls back to a free groomer. A groom goes to a free groomer; when every groomer is
// busy, a groomer whose only conflict is a bath booking can be freed by moving that
// bath onto a free bather. Only one level of reallocation is ever attempted.
//
// Nothing in this package touches storage. Callers load the roster and the day's
// bookings and commit the returned Assignment themselves.
package scheduling
