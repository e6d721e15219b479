// Package tool turns ordinary Go functions into callable tools for language
// models.
//
// A [Function] pairs a name, a description, a parameter schema, and a
// [Handler]. Handlers never see the model's raw JSON arguments; they receive
// an [Extractor] that validates each field against the declared schema and
// returns typed errors for missing fields, type mismatches, and invalid enum
// values.
//
//	weather := tool.NewBuilder().
//	    Name("get_weather").
//	    Description("Get current weather for a city").
//	    Schema(schema.Object("Weather lookup parameters").
//	        Property("city", schema.String("City name")).
//	        MustBuild()).
//	    Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
//	        city, err := args.String("city")
//	        if err != nil {
//	            return "", err
//	        }
//	        return lookupWeather(ctx, city)
//	    }).
//	    MustBuild()
//
// A [Registry] holds Functions under their names and dispatches incoming
// tool calls. Registration is fail-fast: a duplicate name is rejected with
// [AlreadyRegisteredError] rather than silently replacing the earlier tool.
//
//	registry := tool.MustNewRegistry(weather, search)
//	result, err := registry.Dispatch(ctx, call)
//
// Handler failures never escape Dispatch as faults. Errors and panics inside
// a handler are converted into an error-flagged [llm4s.ToolResult] so the
// model can see the failure and adapt.
package tool
