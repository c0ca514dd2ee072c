// Package seed holds the catalog a new user starts with.
package seed

import (
	"fmt"

	"tableflip.dev/packlist/pkg/catalog"
)

const (
	TravelFolderID = "folder_travel"
	TravelGroupID  = "group_travel_default"

	CategoryTools    = "cat_tools"
	CategoryHardware = "cat_hardware"
	CategoryCables   = "cat_cables"
	CategorySoftware = "cat_software"
	CategoryDocs     = "cat_docs"
)

// LegacyCategories maps the fixed category labels stored by early releases
// to the seeded category ids.
var LegacyCategories = map[string]string{
	"燒錄/工具 (Tools)":        CategoryTools,
	"硬體/PCBA (Hardware)":   CategoryHardware,
	"線材/電源 (Cables/Power)": CategoryCables,
	"軟體/韌體 (Software)":     CategorySoftware,
	"文件/雜項 (Docs/Misc)":    CategoryDocs,
}

type seedItem struct {
	category string
	name     string
	version  string
}

var items = []seedItem{
	{CategoryTools, "ST-Link (U2-04)", ""},
	{CategoryTools, "U-4P-10", ""},
	{CategoryTools, "3.3v PWR-5", ""},
	{CategoryTools, "U-TTL-4 (WIFI燒錄)", ""},
	{CategoryTools, "紅電錶", ""},
	{CategoryTools, "放大鏡-2", ""},
	{CategoryTools, "USB-3p -1", ""},
	{CategoryTools, "USB-3p -2", ""},
	{CategoryTools, "聶子", ""},
	{CategoryTools, "ROS治具3 (UR8、UR10)", ""},

	{CategoryHardware, "OSG PCBA +燈管+風扇", "V1.6"},
	{CategoryHardware, "ROS PVBA +Ozon板", "V1.73"},
	{CategoryHardware, "ROSV", "1.7"},
	{CategoryHardware, "Ozone", "122"},
	{CategoryHardware, "ROS電池", "9顆"},
	{CategoryHardware, "Alpha Sensor", ""},
	{CategoryHardware, "PCB板子 (硬體/軟體)", ""},

	{CategoryCables, "充電器 (1、3、16)", ""},
	{CategoryCables, "雙紫頭 USB A to C (傳輸)", "C1"},
	{CategoryCables, "短雙白 USB A to C (傳輸)", "C2"},
	{CategoryCables, "編織線 USB A to C (傳輸)", "C1"},
	{CategoryCables, "貼輝冠 USB A to C (傳輸)", "C1"},
	{CategoryCables, "USB PORT Hub", "*1"},
	{CategoryCables, "豆腐頭", "需要八孔"},
	{CategoryCables, "充電線", "8條"},
	{CategoryCables, "延長線 (孔數CL+S1+豆腐頭)", "2條"},

	{CategorySoftware, "S1_DFU", "0624"},
	{CategorySoftware, "S1_AP", "0804"},
	{CategorySoftware, "ROS_DFU", "0624"},
	{CategorySoftware, "ROS_AP", "0730"},
	{CategorySoftware, "OSG_DFU", "0624"},
	{CategorySoftware, "OSG_AP", "0723"},
}

// Folders returns the seeded folders.
func Folders() []catalog.Folder {
	return []catalog.Folder{
		{ID: catalog.DefaultFolderID, Name: "出差用品 (Business)", IsSystem: true},
		{ID: TravelFolderID, Name: "個人出遊 (Travel)"},
	}
}

// Groups returns the system group of each seeded folder.
func Groups() []catalog.Group {
	return []catalog.Group{
		{ID: catalog.DefaultGroupID, FolderID: catalog.DefaultFolderID, Name: "通用清單", IsSystem: true},
		{ID: TravelGroupID, FolderID: TravelFolderID, Name: "通用清單", IsSystem: true},
	}
}

// Categories returns the seeded categories.
func Categories() []catalog.Category {
	return []catalog.Category{
		{ID: CategoryTools, Name: "燒錄/工具 (Tools)", ColorToken: "#b45309"},
		{ID: CategoryHardware, Name: "硬體/PCBA (Hardware)", ColorToken: "#1d4ed8"},
		{ID: CategoryCables, Name: "線材/電源 (Cables/Power)", ColorToken: "#7e22ce"},
		{ID: CategorySoftware, Name: "軟體/韌體 (Software)", ColorToken: "#047857"},
		{ID: CategoryDocs, Name: "文件/雜項 (Docs/Misc)", ColorToken: "#334155"},
	}
}

// Items returns the seeded catalog items. Ids are stable so reseeding is
// repeatable.
func Items() []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for i, s := range items {
		out = append(out, catalog.Item{
			ID:             fmt.Sprintf("item_seed_%02d", i+1),
			FolderID:       catalog.DefaultFolderID,
			GroupID:        catalog.DefaultGroupID,
			Name:           s.name,
			Category:       s.category,
			DefaultVersion: s.version,
		})
	}
	return out
}

// Catalog returns a complete seeded catalog.
func Catalog() catalog.State {
	return catalog.State{
		Folders:    Folders(),
		Groups:     Groups(),
		Categories: Categories(),
		Items:      Items(),
		Bundles:    []catalog.Bundle{},
	}
}
