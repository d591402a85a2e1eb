package tools

import (
	"context"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

// fakeClient implements gpu.Client with per-method hooks and counts every
// upstream call so tests can assert that validation short-circuits.
type fakeClient struct {
	calls int

	searchGrids     func(gpu.GridSearch) ([]gpu.Grid, error)
	gridDetails     func(string) (map[string]any, error)
	gridParents     func(string) ([]map[string]any, error)
	gridChildren    func(string) ([]map[string]any, error)
	searchDocuments func(gpu.DocumentSearch) ([]gpu.Document, error)
	documentDetails func(string) (map[string]any, error)
	documentFiles   func(string) ([]gpu.File, error)
	procedures      func(string, gpu.ProcedureSearch) ([]gpu.Procedure, error)
	models          func(string, *bool) ([]gpu.Model, error)
	model           func(string) (*gpu.Model, error)
	supCategories   func() ([]gpu.Category, error)
	duCategories    func() ([]gpu.Category, error)
	featureInfoDU   func(gpu.PointQuery) (*gpu.FeatureCollection, error)
	featureInfoSUP  func(gpu.PointQuery) (*gpu.FeatureCollection, error)
	featureInfoSCOT func(float64, float64) (*gpu.FeatureCollection, error)
	parcelFeatures  func(string) (*gpu.FeatureCollection, error)
}

func emptyCollection() *gpu.FeatureCollection {
	return &gpu.FeatureCollection{Type: "FeatureCollection", Features: []gpu.Feature{}}
}

func (f *fakeClient) SearchGrids(_ context.Context, q gpu.GridSearch) ([]gpu.Grid, error) {
	f.calls++
	if f.searchGrids != nil {
		return f.searchGrids(q)
	}
	return nil, nil
}

func (f *fakeClient) GridDetails(_ context.Context, code string) (map[string]any, error) {
	f.calls++
	if f.gridDetails != nil {
		return f.gridDetails(code)
	}
	return map[string]any{}, nil
}

func (f *fakeClient) GridParents(_ context.Context, code string) ([]map[string]any, error) {
	f.calls++
	if f.gridParents != nil {
		return f.gridParents(code)
	}
	return nil, nil
}

func (f *fakeClient) GridChildren(_ context.Context, code string) ([]map[string]any, error) {
	f.calls++
	if f.gridChildren != nil {
		return f.gridChildren(code)
	}
	return nil, nil
}

func (f *fakeClient) SearchDocuments(_ context.Context, q gpu.DocumentSearch) ([]gpu.Document, error) {
	f.calls++
	if f.searchDocuments != nil {
		return f.searchDocuments(q)
	}
	return nil, nil
}

func (f *fakeClient) DocumentDetails(_ context.Context, id string) (map[string]any, error) {
	f.calls++
	if f.documentDetails != nil {
		return f.documentDetails(id)
	}
	return map[string]any{}, nil
}

func (f *fakeClient) DocumentFiles(_ context.Context, id string) ([]gpu.File, error) {
	f.calls++
	if f.documentFiles != nil {
		return f.documentFiles(id)
	}
	return nil, nil
}

func (f *fakeClient) Procedures(_ context.Context, gridCode string, q gpu.ProcedureSearch) ([]gpu.Procedure, error) {
	f.calls++
	if f.procedures != nil {
		return f.procedures(gridCode, q)
	}
	return nil, nil
}

func (f *fakeClient) Models(_ context.Context, documentType string, abstract *bool) ([]gpu.Model, error) {
	f.calls++
	if f.models != nil {
		return f.models(documentType, abstract)
	}
	return nil, nil
}

func (f *fakeClient) Model(_ context.Context, name string) (*gpu.Model, error) {
	f.calls++
	if f.model != nil {
		return f.model(name)
	}
	return &gpu.Model{Name: name}, nil
}

func (f *fakeClient) SupCategories(_ context.Context) ([]gpu.Category, error) {
	f.calls++
	if f.supCategories != nil {
		return f.supCategories()
	}
	return nil, nil
}

func (f *fakeClient) DuCategories(_ context.Context) ([]gpu.Category, error) {
	f.calls++
	if f.duCategories != nil {
		return f.duCategories()
	}
	return nil, nil
}

func (f *fakeClient) FeatureInfoDU(_ context.Context, q gpu.PointQuery) (*gpu.FeatureCollection, error) {
	f.calls++
	if f.featureInfoDU != nil {
		return f.featureInfoDU(q)
	}
	return emptyCollection(), nil
}

func (f *fakeClient) FeatureInfoSUP(_ context.Context, q gpu.PointQuery) (*gpu.FeatureCollection, error) {
	f.calls++
	if f.featureInfoSUP != nil {
		return f.featureInfoSUP(q)
	}
	return emptyCollection(), nil
}

func (f *fakeClient) FeatureInfoSCOT(_ context.Context, lon, lat float64) (*gpu.FeatureCollection, error) {
	f.calls++
	if f.featureInfoSCOT != nil {
		return f.featureInfoSCOT(lon, lat)
	}
	return emptyCollection(), nil
}

func (f *fakeClient) ParcelFeatures(_ context.Context, parcelID string) (*gpu.FeatureCollection, error) {
	f.calls++
	if f.parcelFeatures != nil {
		return f.parcelFeatures(parcelID)
	}
	return emptyCollection(), nil
}
