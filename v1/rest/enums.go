package rest

// Distance is the vector similarity metric of a collection.
type Distance string

const (
	DistanceCosine    Distance = "Cosine"
	DistanceEuclid    Distance = "Euclid"
	DistanceDot       Distance = "Dot"
	DistanceManhattan Distance = "Manhattan"
)

// CollectionStatus is the operating condition of a collection.
type CollectionStatus string

const (
	CollectionStatusGreen  CollectionStatus = "green"
	CollectionStatusYellow CollectionStatus = "yellow"
	CollectionStatusRed    CollectionStatus = "red"
	CollectionStatusGrey   CollectionStatus = "grey"
)

// PayloadSchemaType is the declared type of an indexed payload field.
type PayloadSchemaType string

const (
	PayloadSchemaKeyword  PayloadSchemaType = "keyword"
	PayloadSchemaInteger  PayloadSchemaType = "integer"
	PayloadSchemaFloat    PayloadSchemaType = "float"
	PayloadSchemaGeo      PayloadSchemaType = "geo"
	PayloadSchemaText     PayloadSchemaType = "text"
	PayloadSchemaBool     PayloadSchemaType = "bool"
	PayloadSchemaDatetime PayloadSchemaType = "datetime"
	PayloadSchemaUUID     PayloadSchemaType = "uuid"
)

// UpdateStatus is the outcome of a mutation.
type UpdateStatus string

const (
	UpdateStatusAcknowledged  UpdateStatus = "acknowledged"
	UpdateStatusCompleted     UpdateStatus = "completed"
	UpdateStatusClockRejected UpdateStatus = "clock_rejected"
)

type TokenizerType string

const (
	TokenizerPrefix       TokenizerType = "prefix"
	TokenizerWhitespace   TokenizerType = "whitespace"
	TokenizerWord         TokenizerType = "word"
	TokenizerMultilingual TokenizerType = "multilingual"
)

// Datatype is the storage type of vector elements.
type Datatype string

const (
	DatatypeFloat32 Datatype = "float32"
	DatatypeUint8   Datatype = "uint8"
	DatatypeFloat16 Datatype = "float16"
)

type ScalarType string

const ScalarTypeInt8 ScalarType = "int8"

type CompressionRatio string

const (
	CompressionX4  CompressionRatio = "x4"
	CompressionX8  CompressionRatio = "x8"
	CompressionX16 CompressionRatio = "x16"
	CompressionX32 CompressionRatio = "x32"
	CompressionX64 CompressionRatio = "x64"
)
