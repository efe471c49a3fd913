package domain

// CurrencyINR is the only currency orders are priced in.
const CurrencyINR = "INR"
