package storage

// Seed documents written whenever a table file is missing, empty or cannot
// be parsed. Each is the complete wrapped document for its table.
var seedDocuments = map[Table]string{
	TableCrops: `{
  "crops": [
    { "id": "C01", "name": "Corn", "plantedOn": "2024-04-15", "expectedHarvest": "2024-09-20", "status": "Growing", "field": "North Paddock" },
    { "id": "S01", "name": "Soybeans", "plantedOn": "2024-05-01", "expectedHarvest": "2024-10-05", "status": "Flowering", "field": "West Field" },
    { "id": "W01", "name": "Wheat", "plantedOn": "2023-10-20", "expectedHarvest": "2024-06-15", "status": "Harvested", "field": "River Bend" },
    { "id": "P01", "name": "Potatoes", "plantedOn": "2024-05-20", "expectedHarvest": "2024-09-30", "status": "Planted", "field": "Hillside Plot" }
  ]
}`,
	TableFields: `{
  "fields": [
    { "id": "F001", "name": "North Paddock", "crop": "Corn", "area": 120, "status": "Growing" },
    { "id": "F002", "name": "West Field", "crop": "Soybeans", "area": 85, "status": "Flowering" },
    { "id": "F003", "name": "River Bend", "crop": "Wheat", "area": 150, "status": "Harvest Ready" },
    { "id": "F004", "name": "Hillside Plot", "crop": "Potatoes", "area": 45, "status": "Planted" },
    { "id": "F005", "name": "South Field", "crop": "Fallow", "area": 100, "status": "Idle" }
  ]
}`,
	TableLivestock: `{
  "livestock": [
    { "id": "COW-001", "type": "Cow", "breed": "Holstein", "gender": "Female", "dob": "2020-03-15", "status": "Healthy", "purpose": "Dairy" },
    { "id": "GOA-001", "type": "Goat", "breed": "Boer", "gender": "Male", "dob": "2022-08-20", "status": "Needs Vaccination", "purpose": "For Sale" },
    { "id": "BUF-001", "type": "Buffalo", "breed": "Murrah", "gender": "Female", "dob": "2019-11-10", "status": "Healthy", "purpose": "Dairy" },
    { "id": "CHI-001", "type": "Chicken", "breed": "Broiler", "gender": "Female", "dob": "2024-05-01", "status": "Healthy", "purpose": "Egg Production" },
    { "id": "COW-002", "type": "Cow", "breed": "Jersey", "gender": "Female", "dob": "2023-12-01", "status": "Healthy", "purpose": "Growing" },
    { "id": "CHI-002", "type": "Chicken", "breed": "Layer", "gender": "Male", "dob": "2024-05-01", "status": "Healthy", "purpose": "For Sale" }
  ]
}`,
	TableEggLogs: `{
  "eggLogs": [
    { "id": "LOG-1", "date": "2024-07-20T10:00:00Z", "quantity": 48, "notes": "A bit smaller than usual", "createdAt": "2024-07-20T10:00:00Z" },
    { "id": "LOG-2", "date": "2024-07-19T10:00:00Z", "quantity": 52, "notes": "", "createdAt": "2024-07-19T10:00:00Z" },
    { "id": "LOG-3", "date": "2024-07-18T10:00:00Z", "quantity": 50, "notes": "One egg was cracked", "createdAt": "2024-07-18T10:00:00Z" }
  ]
}`,
	TableHarvests: `{
  "harvests": [
    {
      "id": "HARV-1",
      "date": "2024-06-15",
      "item": "Wheat",
      "type": "Crop",
      "quantity": 50,
      "unit": "quintal",
      "notes": "Excellent quality, low moisture.",
      "sold": true,
      "saleDetails": {
        "pricePerUnit": 2200,
        "totalRevenue": 110000
      }
    },
    {
      "id": "HARV-2",
      "date": "2024-07-20",
      "item": "Eggs",
      "type": "Eggs",
      "quantity": 4,
      "unit": "dozen",
      "notes": "Collected from layer chickens",
      "sold": false
    }
  ]
}`,
	TableTransactions: `{
  "transactions": [
    { "id": "TXN-1", "category": "Seeds", "amount": 1200, "date": "2024-04-10T00:00:00Z", "description": "Corn seeds for North Paddock", "type": "expense", "createdAt": "2024-04-10T00:00:00Z" },
    { "id": "TXN-2", "category": "Fertilizers", "amount": 800, "date": "2024-05-15T00:00:00Z", "description": "NPK fertilizer for all fields", "type": "expense", "createdAt": "2024-05-15T00:00:00Z" },
    { "id": "TXN-3", "category": "Livestock Sale", "amount": 1500, "date": "2024-06-01T00:00:00Z", "description": "Sold 2 Boer goats", "type": "revenue", "createdAt": "2024-06-01T00:00:00Z" },
    { "id": "TXN-4", "category": "Labor", "amount": 2500, "date": "2024-06-30T00:00:00Z", "description": "June salaries", "type": "expense", "createdAt": "2024-06-30T00:00:00Z" },
    { "id": "TXN-5", "category": "Feeds", "amount": 600, "date": "2024-07-05T00:00:00Z", "description": "Chicken and cow feed", "type": "expense", "createdAt": "2024-07-05T00:00:00Z" }
  ]
}`,
	TableUsers: `{
  "users": [
    { "id": 1, "name": "Alice Farmer", "username": "alicefarm", "email": "alice@farm.com", "role": "Admin", "avatarId": "avatar-1" },
    { "id": 2, "name": "Bob Manager", "username": "bobman", "email": "bob@farm.com", "role": "Manager", "avatarId": "avatar-2" },
    { "id": 3, "name": "Charlie Worker", "username": "charliework", "email": "charlie@farm.com", "role": "Farmer", "avatarId": "avatar-3" }
  ]
}`,
	TableAlerts: `{
  "alerts": [
    {
      "id": "ALERT-001",
      "timestamp": "2024-07-21T08:00:00Z",
      "module": "Livestock",
      "message": "High urgency health concern detected for COW-001. Limping observed.",
      "read": false,
      "link": "/dashboard/livestock/analyze"
    },
    {
      "id": "ALERT-002",
      "timestamp": "2024-07-20T14:30:00Z",
      "module": "Finances",
      "message": "You have exceeded 90% of your total budget for the season.",
      "read": false,
      "link": "/dashboard/finances"
    },
    {
      "id": "ALERT-003",
      "timestamp": "2024-07-20T09:00:00Z",
      "module": "Crops",
      "message": "Wheat in River Bend field is now ready for harvest.",
      "read": true,
      "link": "/dashboard/crops"
    },
    {
      "id": "ALERT-004",
      "timestamp": "2024-07-19T18:00:00Z",
      "module": "Resources",
      "message": "Fertilizer stock is running low. Current inventory is below 10%.",
      "read": false,
      "link": "/dashboard/resources"
    },
    {
      "id": "ALERT-005",
      "timestamp": "2024-07-18T11:00:00Z",
      "module": "Crops",
      "message": "AI detected potential signs of blight in the Hillside Plot (Potatoes).",
      "read": true,
      "link": "/dashboard/ai/diagnose-plant"
    }
  ]
}`,
	TableRecentActivities: `{
  "recentActivities": [
    { "id": 1, "activity": "Harvested Corn Field A3", "timestamp": "2 hours ago", "type": "Harvest" },
    { "id": 2, "activity": "Applied fertilizer to Wheat Field B1", "timestamp": "1 day ago", "type": "Fertilizer" },
    { "id": 3, "activity": "Planted Soybeans in Field C2", "timestamp": "3 days ago", "type": "Planting" },
    { "id": 4, "activity": "Irrigation system ran on Field A3", "timestamp": "4 days ago", "type": "Water" }
  ]
}`,
	TableBackupHistory: `{
  "backupHistory": []
}`,
}
