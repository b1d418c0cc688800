package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"booking_id",
			"type",
			"message",
			"read",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"new_booking",
					"payment_1week",
					"payment_3days",
					"payment_1day",
					"unpaid_reminder",
				},
			},

			"message": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 500,
			},

			"read": bson.M{
				"bsonType": "bool",
			},

			"triggered": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var NotificationScheduleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "last_notification_sent"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},
			"last_notification_sent": bson.M{
				"bsonType": "date",
			},
			"history": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"type", "sent_at"},
					"properties": bson.M{
						"type": bson.M{
							"bsonType": "string",
						},
						"sent_at": bson.M{
							"bsonType": "date",
						},
					},
				},
			},
		},
	},
}
