// Package sdk is a typed HTTP client for the newsclassifier API.
//
// Basic usage:
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	pred, err := client.Predict(ctx, sdk.Article{
//		Title:       "Team wins the final",
//		Description: "A decisive victory in the last minutes",
//	})
package sdk
