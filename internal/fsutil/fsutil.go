// Package fsutil holds small helpers shared by the Firestore repositories.
package fsutil

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firestorepb "cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Count runs a server-side count aggregation over the given query.
func Count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count aggregation: %w", err)
	}

	v, ok := res["all"]
	if !ok {
		return 0, fmt.Errorf("count aggregation returned no result")
	}
	pb, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count aggregation returned unexpected type %T", v)
	}
	return pb.GetIntegerValue(), nil
}

// IsNotFound reports whether err is a Firestore document-not-found error.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
