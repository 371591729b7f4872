// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package grammar

// LookupEmoji returns the emoji for a GitHub-style shortcode name
// (without the surrounding colons).
func LookupEmoji(name string) (string, bool) {
	e, ok := emojiShortcodes[name]
	return e, ok
}

// emojiShortcodes is a subset of the gemoji shortcode table.
var emojiShortcodes = map[string]string{
	"+1":                 "\U0001F44D",
	"-1":                 "\U0001F44E",
	"100":                "\U0001F4AF",
	"heart":              "❤️",
	"broken_heart":       "\U0001F494",
	"smile":              "\U0001F604",
	"smiley":             "\U0001F603",
	"grin":               "\U0001F601",
	"laughing":           "\U0001F606",
	"joy":                "\U0001F602",
	"wink":               "\U0001F609",
	"blush":              "\U0001F60A",
	"innocent":           "\U0001F607",
	"heart_eyes":         "\U0001F60D",
	"sunglasses":         "\U0001F60E",
	"thinking":           "\U0001F914",
	"neutral_face":       "\U0001F610",
	"confused":           "\U0001F615",
	"cry":                "\U0001F622",
	"sob":                "\U0001F62D",
	"angry":              "\U0001F620",
	"scream":             "\U0001F631",
	"sleeping":           "\U0001F634",
	"clap":               "\U0001F44F",
	"wave":               "\U0001F44B",
	"pray":               "\U0001F64F",
	"muscle":             "\U0001F4AA",
	"ok_hand":            "\U0001F44C",
	"thumbsup":           "\U0001F44D",
	"thumbsdown":         "\U0001F44E",
	"eyes":               "\U0001F440",
	"tada":               "\U0001F389",
	"sparkles":           "✨",
	"star":               "⭐",
	"fire":               "\U0001F525",
	"zap":                "⚡",
	"boom":               "\U0001F4A5",
	"rocket":             "\U0001F680",
	"bug":                "\U0001F41B",
	"memo":               "\U0001F4DD",
	"pencil":             "\U0001F4DD",
	"book":               "\U0001F4D6",
	"bulb":               "\U0001F4A1",
	"lock":               "\U0001F512",
	"key":                "\U0001F511",
	"link":               "\U0001F517",
	"wrench":             "\U0001F527",
	"hammer":             "\U0001F528",
	"gear":               "⚙️",
	"package":            "\U0001F4E6",
	"construction":       "\U0001F6A7",
	"warning":            "⚠️",
	"no_entry":           "⛔",
	"x":                  "❌",
	"heavy_check_mark":   "✔️",
	"white_check_mark":   "✅",
	"question":           "❓",
	"exclamation":        "❗",
	"information_source": "ℹ️",
	"coffee":             "☕",
	"pizza":              "\U0001F355",
	"beer":               "\U0001F37A",
	"cat":                "\U0001F431",
	"dog":                "\U0001F436",
	"penguin":            "\U0001F427",
	"sun":                "☀️",
	"cloud":              "☁️",
	"snowflake":          "❄️",
	"rainbow":            "\U0001F308",
	"earth_americas":     "\U0001F30E",
	"calendar":           "\U0001F4C6",
	"clock1":             "\U0001F550",
	"hourglass":          "⌛",
	"email":              "\U0001F4E7",
	"phone":              "☎️",
	"computer":           "\U0001F4BB",
	"arrow_right":        "➡️",
	"arrow_left":         "⬅️",
	"arrow_up":           "⬆️",
	"arrow_down":         "⬇️",
}
