package catalog

// DefaultTemplateKey is the quest template list used for residents without their own
const DefaultTemplateKey = "default"

// SpawnRandom lets a variety attract any resident type
const SpawnRandom = "random"
