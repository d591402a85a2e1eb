package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

// parcelIDPattern matches dept_commune_prefix_section_number, e.g.
// 69_123_000_AB_0012.
var parcelIDPattern = regexp.MustCompile(`^[0-9A-Z]{2,3}_[0-9]{3}_[0-9A-Z]{3}_[0-9A-Z]{1,2}_[0-9]{4}$`)

type pointArgs struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type duPointArgs struct {
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	FeatureType string  `json:"feature_type,omitempty"`
	Partition   string  `json:"partition,omitempty"`
}

type supPointArgs struct {
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Category string  `json:"category,omitempty"`
}

type parcelArgs struct {
	ParcelID string `json:"parcel_id"`
}

func (h *Handler) registerSpatialTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_features_at_point",
		Description: "Get the urban-planning features (zoning, prescriptions, information layers) covering a longitude/latitude point.",
		Annotations: readOnly("Features at point"),
		InputSchema: objectSchema(map[string]any{
			"lon":          numberProp("Longitude in WGS84 decimal degrees", -180, 180),
			"lat":          numberProp("Latitude in WGS84 decimal degrees", -90, 90),
			"feature_type": stringProp("Only features of this feature-type name, e.g. zone_urba"),
			"partition":    stringProp("Only features of this partition"),
		}, "lon", "lat"),
	}, handlerFor(h, "get_features_at_point", h.getFeaturesAtPoint))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_sup_features_at_point",
		Description: "Get the public-utility servitudes (SUP) covering a longitude/latitude point.",
		Annotations: readOnly("SUP features at point"),
		InputSchema: objectSchema(map[string]any{
			"lon":      numberProp("Longitude in WGS84 decimal degrees", -180, 180),
			"lat":      numberProp("Latitude in WGS84 decimal degrees", -90, 90),
			"category": stringProp("Only servitudes of this SUP category code"),
		}, "lon", "lat"),
	}, handlerFor(h, "get_sup_features_at_point", h.getSupFeaturesAtPoint))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_scot_at_point",
		Description: "Get the territorial-coherence scheme (SCoT) perimeter covering a longitude/latitude point.",
		Annotations: readOnly("SCoT at point"),
		InputSchema: objectSchema(map[string]any{
			"lon": numberProp("Longitude in WGS84 decimal degrees", -180, 180),
			"lat": numberProp("Latitude in WGS84 decimal degrees", -90, 90),
		}, "lon", "lat"),
	}, handlerFor(h, "get_scot_at_point", h.getScotAtPoint))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_parcel_features",
		Description: "Get every urban-planning feature intersecting a cadastral parcel.",
		Annotations: readOnly("Parcel features"),
		InputSchema: objectSchema(map[string]any{
			"parcel_id": patternProp(
				"Cadastral parcel id as dept_commune_prefix_section_number, e.g. 69_123_000_AB_0012",
				"^[0-9A-Z]{2,3}_[0-9]{3}_[0-9A-Z]{3}_[0-9A-Z]{1,2}_[0-9]{4}$"),
		}, "parcel_id"),
	}, handlerFor(h, "get_parcel_features", h.getParcelFeatures))
}

func (h *Handler) getFeaturesAtPoint(ctx context.Context, args duPointArgs) (string, error) {
	if err := validatePoint(args.Lon, args.Lat); err != nil {
		return "", err
	}
	fc, err := h.client.FeatureInfoDU(ctx, gpu.PointQuery{
		Lon:       args.Lon,
		Lat:       args.Lat,
		TypeName:  args.FeatureType,
		Partition: args.Partition,
	})
	if err != nil {
		return "", err
	}
	return renderFeatureCollection("Urban Planning Features", fc), nil
}

func (h *Handler) getSupFeaturesAtPoint(ctx context.Context, args supPointArgs) (string, error) {
	if err := validatePoint(args.Lon, args.Lat); err != nil {
		return "", err
	}
	fc, err := h.client.FeatureInfoSUP(ctx, gpu.PointQuery{
		Lon:      args.Lon,
		Lat:      args.Lat,
		Category: args.Category,
	})
	if err != nil {
		return "", err
	}
	return renderFeatureCollection("Public-Utility Servitudes", fc), nil
}

func (h *Handler) getScotAtPoint(ctx context.Context, args pointArgs) (string, error) {
	if err := validatePoint(args.Lon, args.Lat); err != nil {
		return "", err
	}
	fc, err := h.client.FeatureInfoSCOT(ctx, args.Lon, args.Lat)
	if err != nil {
		return "", err
	}
	return renderFeatureCollection("SCoT Perimeter", fc), nil
}

func (h *Handler) getParcelFeatures(ctx context.Context, args parcelArgs) (string, error) {
	if !parcelIDPattern.MatchString(args.ParcelID) {
		return "", paramErrorf("parcel_id must match dept_commune_prefix_section_number, got %q", args.ParcelID)
	}
	fc, err := h.client.ParcelFeatures(ctx, args.ParcelID)
	if err != nil {
		return "", err
	}
	return renderFeatureCollection("Parcel Features", fc), nil
}

func validatePoint(lon, lat float64) error {
	if lon < -180 || lon > 180 {
		return paramErrorf("lon must be between -180 and 180, got %g", lon)
	}
	if lat < -90 || lat > 90 {
		return paramErrorf("lat must be between -90 and 90, got %g", lat)
	}
	return nil
}

func renderFeatureCollection(title string, fc *gpu.FeatureCollection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Total features: %d\n", fc.TotalFeatures)

	if fc.TotalFeatures == 0 {
		b.WriteString("\nNo features found at this location.\n")
		return b.String()
	}

	for i, f := range fc.Features {
		if f.ID != "" {
			fmt.Fprintf(&b, "\n## Feature %s\n", f.ID)
		} else {
			fmt.Fprintf(&b, "\n## Feature %d\n", i+1)
		}
		if len(f.Properties) == 0 {
			b.WriteString("(no properties)\n")
			continue
		}
		propertyBullets(&b, f.Properties)
	}
	return b.String()
}
