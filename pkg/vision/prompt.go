package vision

// extractionPrompt instructs the model to list every wine visible in the
// photo as a strict JSON array. Unknown fields must be null rather than
// omitted; downstream decoding also tolerates the array being wrapped in a
// {"wines": [...]} object.
const extractionPrompt = `Give me all the wines in the image, in the following format.
If some information is not clearly visible, do not invent it.
The response must be JSON only. The JSON format must be an array of objects with:

name: The name of the wine.
type: Whether the wine is red or white. Only specify it if it is written on the label. Possible options: "red" or "white", null if not available.
year: The year of the wine, or null if not available.
price: The price of the wine, or null if not available.

Example:
[
  {
    "name": "Comenda Grande",
    "type": "red",
    "year": "2021",
    "price": "11.49"
  },
  {
    "name": "Conventual Reserva",
    "type": null,
    "year": null,
    "price": "11.99"
  }
]`
