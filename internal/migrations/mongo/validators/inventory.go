package validators

import "go.mongodb.org/mongo-driver/bson"

var InventoryItemValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"category",
			"total_quantity",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"category": bson.M{
				"bsonType": "string",
				"enum": []string{
					"furniture",
					"linen",
					"tableware",
					"equipment",
					"decor",
				},
			},

			"total_quantity": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"reserved_out": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"low_stock_threshold": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var InventoryReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"item_id",
			"booking_id",
			"pavilion_id",
			"event_name",
			"quantity",
			"start_at",
			"end_at",
			"booking_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"item_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"pavilion_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"event_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 150,
			},

			"quantity": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"start_at": bson.M{
				"bsonType": "date",
			},

			"end_at": bson.M{
				"bsonType": "date",
			},

			"booking_status": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  7,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
