package store

import "go.mongodb.org/mongo-driver/bson"

// AggregationMatch helps generate aggregation object for $match
func AggregationMatch(matchCondition bson.M) bson.D {
	match := bson.D{}
	for k, v := range matchCondition {
		match = append(match, bson.E{Key: k, Value: v})
	}

	return bson.D{
		bson.E{Key: "$match", Value: match},
	}
}

// AggregationGroup helps generate aggregation object for $group
func AggregationGroup(id interface{}, groupConditions bson.D) bson.D {
	group := bson.D{bson.E{Key: "_id", Value: id}}
	group = append(group, groupConditions...)

	return bson.D{
		bson.E{Key: "$group", Value: group},
	}
}

// AggregationSort helps generate aggregation object for $sort
func AggregationSort(sortConditions bson.D) bson.D {
	return bson.D{
		bson.E{Key: "$sort", Value: sortConditions},
	}
}

// AggregationSkip helps generate aggregation object for $skip
func AggregationSkip(count int64) bson.D {
	return bson.D{
		bson.E{Key: "$skip", Value: count},
	}
}

// AggregationLimit helps generate aggregation object for $limit
func AggregationLimit(count int64) bson.D {
	return bson.D{
		bson.E{Key: "$limit", Value: count},
	}
}
