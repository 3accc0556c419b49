// Package shipment provides the Shipment aggregate and the internal
// shipment-status vocabulary that carrier-native tracking codes are
// normalized into.
//
// The package includes:
//   - Shipment: The aggregate tracking one parcel for one order
//   - Status: The internal status enum with its fixed terminal set
//   - Carrier: The closed set of supported shipping carriers
//
// Key business rules:
//   - A shipment's tenant always equals its order's tenant
//   - Terminality is a function of the mapped internal status, never of a raw code
//   - Re-applying an identical carrier report is a recorded no-op
package shipment
