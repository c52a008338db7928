package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/nextneighbor/discover/internal/core/domain"
	"github.com/nextneighbor/discover/internal/pkg/geo"
	"github.com/nextneighbor/discover/internal/pkg/metrics"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	markerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Marker",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"lat":         &graphql.Field{Type: graphql.Float},
			"lng":         &graphql.Field{Type: graphql.Float},
			"address":     &graphql.Field{Type: graphql.String},
			"countryCode": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.String},
			"distance":    &graphql.Field{Type: graphql.Float},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.String},
			"nameKey": &graphql.Field{Type: graphql.String},
			"color":   &graphql.Field{Type: graphql.String},
			"icon":    &graphql.Field{Type: graphql.String},
		},
	})

	geocodeResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeocodeResult",
		Fields: graphql.Fields{
			"lat":         &graphql.Field{Type: graphql.Float},
			"lng":         &graphql.Field{Type: graphql.Float},
			"displayName": &graphql.Field{Type: graphql.String},
		},
	})

	positionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SpherePosition",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
			"z": &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"markers": &graphql.Field{
				Type:        graphql.NewList(markerType),
				Description: "Filtered community markers",
				Args: graphql.FieldConfigArgument{
					"north":      &graphql.ArgumentConfig{Type: graphql.Float},
					"south":      &graphql.ArgumentConfig{Type: graphql.Float},
					"east":       &graphql.ArgumentConfig{Type: graphql.Float},
					"west":       &graphql.ArgumentConfig{Type: graphql.Float},
					"categories": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"search":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					metrics.MarkerQueries.WithLabelValues("graphql").Inc()

					var filter domain.MarkerFilter

					north, okN := p.Args["north"].(float64)
					south, okS := p.Args["south"].(float64)
					east, okE := p.Args["east"].(float64)
					west, okW := p.Args["west"].(float64)
					if okN && okS && okE && okW {
						filter.Bounds = &domain.Bounds{North: north, South: south, East: east, West: west}
					}

					if raw, ok := p.Args["categories"].([]interface{}); ok {
						for _, v := range raw {
							if s, ok := v.(string); ok && s != "" {
								filter.Categories = append(filter.Categories, s)
							}
						}
					}

					if s, ok := p.Args["search"].(string); ok {
						filter.Search = s
					}

					return deps.Markers.Query(p.Context, filter)
				},
			},
			"marker": &graphql.Field{
				Type:        markerType,
				Description: "Get a marker by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Markers.GetByID(p.Context, id)
				},
			},
			"markersNearby": &graphql.Field{
				Type:        graphql.NewList(markerType),
				Description: "Markers near a point, nearest first",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 1000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radius"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Markers.Nearby(p.Context, lat, lng, radius, limit)
				},
			},
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "Category metadata table",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return domain.Categories(), nil
				},
			},
			"geocode": &graphql.Field{
				Type:        geocodeResultType,
				Description: "Resolve a location search; null on no match",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					result, err := deps.Geocode.Search(p.Context, q)
					if err != nil {
						return nil, err
					}
					if result == nil {
						return nil, nil
					}
					return result, nil
				},
			},
			"project": &graphql.Field{
				Type:        positionType,
				Description: "Project a coordinate onto the globe sphere",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 1.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radius"].(float64)
					x, y, z := geo.Project(lat, lng, radius)
					return map[string]interface{}{"x": x, "y": y, "z": z}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
