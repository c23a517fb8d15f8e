package conversion

import (
	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// ── Vectors ──────────────────────────────────────────────────────────────────

// ToGrpcVectors converts point vectors for writing. A nil vector converts to nil.
func ToGrpcVectors(v rest.VectorStruct) (*qdrant.Vectors, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case rest.DenseVector:
		return qdrant.NewVectorsDense(cloneSlice([]float32(v))), nil
	case rest.NamedVectors:
		named := make(map[string]*qdrant.Vector, len(v))
		for name, data := range v {
			named[name] = qdrant.NewVectorDense(cloneSlice(data))
		}
		return qdrant.NewVectorsMap(named), nil
	}
	return nil, invalidVariant("vector", v)
}

// ToRestVectors converts written point vectors. Only dense vectors have a
// REST counterpart here.
func ToRestVectors(v *qdrant.Vectors) (rest.VectorStruct, error) {
	if v == nil {
		return nil, nil
	}
	switch o := v.GetVectorsOptions().(type) {
	case *qdrant.Vectors_Vector:
		data, err := denseData(o.Vector)
		if err != nil {
			return nil, err
		}
		return rest.DenseVector(data), nil
	case *qdrant.Vectors_Vectors:
		if o.Vectors == nil {
			break
		}
		named := make(rest.NamedVectors, len(o.Vectors.GetVectors()))
		for name, vec := range o.Vectors.GetVectors() {
			data, err := denseData(vec)
			if err != nil {
				return nil, field(name, err)
			}
			named[name] = data
		}
		return named, nil
	}
	return nil, invalidVariant("vectors", v)
}

// ToGrpcVectorsOutput converts point vectors as returned by reads.
func ToGrpcVectorsOutput(v rest.VectorStruct) (*qdrant.VectorsOutput, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case rest.DenseVector:
		return &qdrant.VectorsOutput{VectorsOptions: &qdrant.VectorsOutput_Vector{
			Vector: denseOutput(v),
		}}, nil
	case rest.NamedVectors:
		named := make(map[string]*qdrant.VectorOutput, len(v))
		for name, data := range v {
			named[name] = denseOutput(data)
		}
		return &qdrant.VectorsOutput{VectorsOptions: &qdrant.VectorsOutput_Vectors{
			Vectors: &qdrant.NamedVectorsOutput{Vectors: named},
		}}, nil
	}
	return nil, invalidVariant("vector", v)
}

// ToRestVectorsOutput converts point vectors as returned by reads.
func ToRestVectorsOutput(v *qdrant.VectorsOutput) (rest.VectorStruct, error) {
	if v == nil {
		return nil, nil
	}
	switch o := v.GetVectorsOptions().(type) {
	case *qdrant.VectorsOutput_Vector:
		data, err := denseData(o.Vector)
		if err != nil {
			return nil, err
		}
		return rest.DenseVector(data), nil
	case *qdrant.VectorsOutput_Vectors:
		if o.Vectors == nil {
			break
		}
		named := make(rest.NamedVectors, len(o.Vectors.GetVectors()))
		for name, vec := range o.Vectors.GetVectors() {
			data, err := denseData(vec)
			if err != nil {
				return nil, field(name, err)
			}
			named[name] = data
		}
		return named, nil
	}
	return nil, invalidVariant("vectors", v)
}

func denseOutput(data []float32) *qdrant.VectorOutput {
	return &qdrant.VectorOutput{Vector: &qdrant.VectorOutput_Dense{
		Dense: &qdrant.DenseVector{Data: cloneSlice(data)},
	}}
}

// denseSource is implemented by *qdrant.Vector and *qdrant.VectorOutput.
type denseSource interface {
	GetDense() *qdrant.DenseVector
	GetData() []float32
	GetIndices() *qdrant.SparseIndices
	GetVectorsCount() uint32
}

// denseData rejects sparse and multi vectors, which have no dense form.
func denseData(v denseSource) ([]float32, error) {
	if d := v.GetDense(); d != nil {
		return cloneSlice(d.GetData()), nil
	}
	// Servers before 1.14 only fill the flat data field.
	//nolint:staticcheck
	if v.GetIndices() == nil && v.GetVectorsCount() == 0 && len(v.GetData()) > 0 {
		return cloneSlice(v.GetData()), nil //nolint:staticcheck
	}
	return nil, invalidVariant("vector", "not a dense vector")
}

// ── Points ───────────────────────────────────────────────────────────────────

func ToGrpcPointStruct(p *rest.PointStruct) (*qdrant.PointStruct, error) {
	id, err := ToGrpcPointID(p.ID)
	if err != nil {
		return nil, field("id", err)
	}
	vectors, err := ToGrpcVectors(p.Vector)
	if err != nil {
		return nil, field("vector", err)
	}
	payload, err := ToGrpcPayload(p.Payload)
	if err != nil {
		return nil, field("payload", err)
	}
	return &qdrant.PointStruct{Id: id, Vectors: vectors, Payload: payload}, nil
}

func ToRestPointStruct(p *qdrant.PointStruct) (*rest.PointStruct, error) {
	id, err := ToRestPointID(p.GetId())
	if err != nil {
		return nil, field("id", err)
	}
	vector, err := ToRestVectors(p.GetVectors())
	if err != nil {
		return nil, field("vector", err)
	}
	payload, err := ToRestPayload(p.GetPayload())
	if err != nil {
		return nil, field("payload", err)
	}
	return &rest.PointStruct{ID: id, Vector: vector, Payload: payload}, nil
}

// ToGrpcRecord converts a record into the gRPC read model.
func ToGrpcRecord(r *rest.Record) (*qdrant.RetrievedPoint, error) {
	id, err := ToGrpcPointID(r.ID)
	if err != nil {
		return nil, field("id", err)
	}
	vectors, err := ToGrpcVectorsOutput(r.Vector)
	if err != nil {
		return nil, field("vector", err)
	}
	payload, err := ToGrpcPayload(r.Payload)
	if err != nil {
		return nil, field("payload", err)
	}
	return &qdrant.RetrievedPoint{Id: id, Vectors: vectors, Payload: payload}, nil
}

// ToRestRecord converts a point returned by scroll or get.
func ToRestRecord(p *qdrant.RetrievedPoint) (*rest.Record, error) {
	id, err := ToRestPointID(p.GetId())
	if err != nil {
		return nil, field("id", err)
	}
	vector, err := ToRestVectorsOutput(p.GetVectors())
	if err != nil {
		return nil, field("vector", err)
	}
	payload, err := ToRestPayload(p.GetPayload())
	if err != nil {
		return nil, field("payload", err)
	}
	return &rest.Record{ID: id, Vector: vector, Payload: payload}, nil
}

// RecordToPointStruct turns a read record into an upsertable point.
func RecordToPointStruct(r rest.Record) rest.PointStruct {
	return rest.PointStruct{ID: r.ID, Vector: r.Vector, Payload: r.Payload}
}

func ToGrpcScoredPoint(p *rest.ScoredPoint) (*qdrant.ScoredPoint, error) {
	id, err := ToGrpcPointID(p.ID)
	if err != nil {
		return nil, field("id", err)
	}
	vectors, err := ToGrpcVectorsOutput(p.Vector)
	if err != nil {
		return nil, field("vector", err)
	}
	payload, err := ToGrpcPayload(p.Payload)
	if err != nil {
		return nil, field("payload", err)
	}
	return &qdrant.ScoredPoint{
		Id:      id,
		Payload: payload,
		Score:   p.Score,
		Version: p.Version,
		Vectors: vectors,
	}, nil
}

func ToRestScoredPoint(p *qdrant.ScoredPoint) (*rest.ScoredPoint, error) {
	id, err := ToRestPointID(p.GetId())
	if err != nil {
		return nil, field("id", err)
	}
	vector, err := ToRestVectorsOutput(p.GetVectors())
	if err != nil {
		return nil, field("vector", err)
	}
	payload, err := ToRestPayload(p.GetPayload())
	if err != nil {
		return nil, field("payload", err)
	}
	return &rest.ScoredPoint{
		ID:      id,
		Version: p.GetVersion(),
		Score:   p.GetScore(),
		Payload: payload,
		Vector:  vector,
	}, nil
}

// ── Search and Results ───────────────────────────────────────────────────────

func ToGrpcSearchParams(p *rest.SearchParams) *qdrant.SearchParams {
	if p == nil {
		return nil
	}
	out := &qdrant.SearchParams{
		HnswEf:      clonePtr(p.HnswEf),
		Exact:       clonePtr(p.Exact),
		IndexedOnly: clonePtr(p.IndexedOnly),
	}
	if q := p.Quantization; q != nil {
		out.Quantization = &qdrant.QuantizationSearchParams{
			Ignore:       clonePtr(q.Ignore),
			Rescore:      clonePtr(q.Rescore),
			Oversampling: clonePtr(q.Oversampling),
		}
	}
	return out
}

func ToRestSearchParams(p *qdrant.SearchParams) *rest.SearchParams {
	if p == nil {
		return nil
	}
	out := &rest.SearchParams{
		HnswEf:      clonePtr(p.HnswEf),
		Exact:       clonePtr(p.Exact),
		IndexedOnly: clonePtr(p.IndexedOnly),
	}
	if q := p.GetQuantization(); q != nil {
		out.Quantization = &rest.QuantizationSearchParams{
			Ignore:       clonePtr(q.Ignore),
			Rescore:      clonePtr(q.Rescore),
			Oversampling: clonePtr(q.Oversampling),
		}
	}
	return out
}

func ToGrpcUpdateResult(r *rest.UpdateResult) (*qdrant.UpdateResult, error) {
	if r == nil {
		return nil, nil
	}
	status, err := ToGrpcUpdateStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return &qdrant.UpdateResult{OperationId: clonePtr(r.OperationID), Status: status}, nil
}

func ToRestUpdateResult(r *qdrant.UpdateResult) (*rest.UpdateResult, error) {
	if r == nil {
		return nil, nil
	}
	status, err := ToRestUpdateStatus(r.GetStatus())
	if err != nil {
		return nil, err
	}
	return &rest.UpdateResult{OperationID: clonePtr(r.OperationId), Status: status}, nil
}
