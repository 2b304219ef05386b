package c8y

import "strings"

// Vendor media types.
const (
	MediaTypeJSON                             = "application/json"
	MediaTypeError                            = "application/vnd.com.nsn.cumulocity.error+json"
	MediaTypeManagedObject                    = "application/vnd.com.nsn.cumulocity.managedobject+json"
	MediaTypeManagedObjectCollection          = "application/vnd.com.nsn.cumulocity.managedobjectcollection+json"
	MediaTypeManagedObjectReference           = "application/vnd.com.nsn.cumulocity.managedobjectreference+json"
	MediaTypeManagedObjectReferenceCollection = "application/vnd.com.nsn.cumulocity.managedobjectreferencecollection+json"
	MediaTypeMeasurement                      = "application/vnd.com.nsn.cumulocity.measurement+json"
	MediaTypeMeasurementCollection            = "application/vnd.com.nsn.cumulocity.measurementcollection+json"
	MediaTypeMeasurementSeries                = "application/vnd.com.nsn.cumulocity.measurementseries+json"
	MediaTypeEvent                            = "application/vnd.com.nsn.cumulocity.event+json"
	MediaTypeEventCollection                  = "application/vnd.com.nsn.cumulocity.eventcollection+json"
	MediaTypeEventBinary                      = "application/vnd.com.nsn.cumulocity.eventbinary+json"
	MediaTypeAlarm                            = "application/vnd.com.nsn.cumulocity.alarm+json"
	MediaTypeAlarmCollection                  = "application/vnd.com.nsn.cumulocity.alarmcollection+json"
	MediaTypeOperation                        = "application/vnd.com.nsn.cumulocity.operation+json"
	MediaTypeOperationCollection              = "application/vnd.com.nsn.cumulocity.operationcollection+json"
	MediaTypeExternalID                       = "application/vnd.com.nsn.cumulocity.externalid+json"
	MediaTypeExternalIDCollection             = "application/vnd.com.nsn.cumulocity.externalidcollection+json"
	MediaTypeApplication                      = "application/vnd.com.nsn.cumulocity.application+json"
	MediaTypeApplicationCollection            = "application/vnd.com.nsn.cumulocity.applicationcollection+json"
	MediaTypeApplicationVersion               = "application/vnd.com.nsn.cumulocity.applicationVersion+json"
	MediaTypeApplicationVersionCollection     = "application/vnd.com.nsn.cumulocity.applicationVersionCollection+json"
	MediaTypeAuditRecord                      = "application/vnd.com.nsn.cumulocity.auditrecord+json"
	MediaTypeAuditRecordCollection            = "application/vnd.com.nsn.cumulocity.auditrecordcollection+json"
	MediaTypeCurrentUser                      = "application/vnd.com.nsn.cumulocity.currentuser+json"
	MediaTypeOption                           = "application/vnd.com.nsn.cumulocity.option+json"
	MediaTypeOptionCollection                 = "application/vnd.com.nsn.cumulocity.optioncollection+json"
	MediaTypeCurrentTenant                    = "application/vnd.com.nsn.cumulocity.currenttenant+json"
	MediaTypeSupportedMeasurements            = "application/vnd.com.nsn.cumulocity.supportedmeasurements+json"
	MediaTypeSupportedSeries                  = "application/vnd.com.nsn.cumulocity.supportedseries+json"
	MediaTypeOctetStream                      = "application/octet-stream"
	MediaTypeTextPlain                        = "text/plain"
)

// Accept returns the Accept header value for a resource media type. The error
// media type always comes first so failures can be negotiated alongside the
// success representation.
func Accept(mediaTypes ...string) string {
	values := make([]string, 0, len(mediaTypes)+1)
	values = append(values, MediaTypeError)

	for _, mt := range mediaTypes {
		if mt != "" && mt != MediaTypeError {
			values = append(values, mt)
		}
	}

	return strings.Join(values, ", ")
}
